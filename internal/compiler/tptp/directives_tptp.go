// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// directive reads vampire(...). Every directive ends with ")." after its
// own arguments.
func (p *parser) directive() exc.Exception {
	c := p.cur()
	c.advance()
	if _, err := c.expect(TokenTypeLeftParen); err != nil {
		return err
	}
	kind, err := c.expectName("directive")
	if err != nil {
		return err
	}
	switch kind.Value {
	case "option":
		err = p.optionDirective()
	case "symbol":
		err = p.symbolDirective()
	case "latex":
		err = p.latexDirective()
	case "left_formula":
		p.color = kernel.ColorLeft
	case "right_formula":
		p.color = kernel.ColorRight
	case "end_formula":
		p.color = kernel.ColorTransparent
	case "model_check":
		err = p.modelCheckDirective()
	default:
		return c.fail(kind, exc.CodeUnknownDirective, fmt.Sprintf("unknown vampire directive %s", kind.Value))
	}
	if err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeRightParen); err != nil {
		return err
	}
	_, err = c.expect(TokenTypeDot)
	return err
}

func (p *parser) optionDirective() exc.Exception {
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	name, err := c.expectName("option name")
	if err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	value := c.current()
	switch value.Type {
	case TokenTypeName, TokenTypeInteger, TokenTypeRational, TokenTypeReal:
		c.advance()
	default:
		return c.unexpected(value, "either atom or number expected as a value of an option")
	}
	if p.config.options == nil {
		log.Infof("ignoring option %s = %s", name.Value, value.Value)
		return nil
	}
	if err := p.config.options.Set(name.Value, value.Value); err != nil {
		return c.fail(name, exc.CodeInvalidOption, fmt.Sprintf("cannot set option %s: %v", name.Value, err))
	}
	log.Debugf("option %s = %s", name.Value, value.Value)
	return nil
}

// directiveSymbol reads the ", predicate|function, name, arity" prefix shared
// by the symbol and latex directives and returns the symbol, adding it when
// it is new.
func (p *parser) directiveSymbol() (*kernel.Symbol, bool, exc.Exception) {
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return nil, false, err
	}
	kind, err := c.expectName("predicate or function")
	if err != nil {
		return nil, false, err
	}
	if kind.Value != "predicate" && kind.Value != "function" {
		return nil, false, c.unexpected(kind, "either 'predicate' or 'function' expected")
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return nil, false, err
	}
	name, err := c.expectName("symbol name")
	if err != nil {
		return nil, false, err
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return nil, false, err
	}
	tok := c.current()
	if tok.Type != TokenTypeInteger {
		return nil, false, c.unexpected(tok, "a non-negative integer (denoting arity) expected")
	}
	arity, perr := strconv.ParseUint(tok.Value, 10, 16)
	if perr != nil {
		return nil, false, c.fail(tok, exc.CodeInvalidNumber, "a number denoting arity expected")
	}
	c.advance()
	if err := p.checkCollision(name, name.Value); err != nil {
		return nil, false, err
	}
	predicate := kind.Value == "predicate"
	if predicate {
		sym, _ := p.sig.AddPredicate(name.Value, int(arity))
		return sym, true, nil
	}
	sym, _ := p.sig.AddFunction(name.Value, int(arity))
	return sym, false, nil
}

func (p *parser) symbolDirective() exc.Exception {
	sym, _, err := p.directiveSymbol()
	if err != nil {
		return err
	}
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	lr := c.current()
	switch lr.Value {
	case "left":
		sym.Color = kernel.ColorLeft
	case "right":
		sym.Color = kernel.ColorRight
	case "skip":
		sym.Skip = true
	default:
		return c.unexpected(lr, "'left', 'right' or 'skip' expected")
	}
	c.advance()
	return nil
}

func (p *parser) latexDirective() exc.Exception {
	sym, predicate, err := p.directiveSymbol()
	if err != nil {
		return err
	}
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	tmpl, err := c.expect(TokenTypeString)
	if err != nil {
		return err
	}
	latex := LatexTemplate{Symbol: sym, Template: tmpl.Value}
	if predicate {
		if _, err := c.expect(TokenTypeComma); err != nil {
			return err
		}
		pol := c.current()
		switch pol.Value {
		case "true":
			latex.Polarity = true
		case "false":
		default:
			return c.unexpected(pol, "polarity expected (true/false)")
		}
		c.advance()
	}
	p.result.Latex = append(p.result.Latex, latex)
	return nil
}

func (p *parser) modelCheckDirective() exc.Exception {
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	cmd, err := c.expectName("model_check command")
	if err != nil {
		return err
	}
	switch cmd.Value {
	case "formulas_start", "model_end":
		p.modelDefinition = false
	case "formulas_end":
	case "model_start":
		p.modelDefinition = true
	default:
		return c.fail(cmd, exc.CodeUnknownDirective, fmt.Sprintf("unknown model_check command %s", cmd.Value))
	}
	return nil
}
