// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"errors"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// application is a symbol application whose arguments are being read. The
// arguments are the results above base.
type application struct {
	tok  *Token
	name string
	base int
}

func startsTerm(kind TokenType) bool {
	switch kind {
	case TokenTypeName, TokenTypeVariable, TokenTypeDollarDollar,
		TokenTypeInteger, TokenTypeRational, TokenTypeReal, TokenTypeString,
		TokenTypeIte, TokenTypeLet, TokenTypeTheoryFunction, TokenTypeLeftBracket:
		return true
	default:
		return false
	}
}

func (p *parser) term() exc.Exception {
	c := p.cur()
	tok := c.current()
	p.push(stEndTerm{})
	switch tok.Type {
	case TokenTypeTrue:
		c.advance()
		p.pushTerm(kernel.NewFormulaTerm(kernel.True), tok)
		return nil
	case TokenTypeFalse:
		c.advance()
		p.pushTerm(kernel.NewFormulaTerm(kernel.False), tok)
		return nil
	case TokenTypeNot, TokenTypeForall, TokenTypeExists:
		p.push(stRestoreEquality{saved: p.eqArgs}, stFormulaAsTerm{}, stSimpleFormula{})
		p.eqArgs = 0
		return nil
	case TokenTypeLeftParen:
		c.advance()
		p.push(stRestoreEquality{saved: p.eqArgs}, stFormulaAsTerm{}, stExpect{kind: TokenTypeRightParen}, stFormula{})
		p.eqArgs = 0
		return nil
	}
	return p.primary(false)
}

// endTerm runs after a term. Outside of an equality a following connective
// or equality sign makes the term the first operand of a formula.
func (p *parser) endTerm() exc.Exception {
	if p.eqArgs > 0 {
		return nil
	}
	c := p.cur()
	tok := c.current()
	if _, ok := binaryConnectives[tok.Type]; ok {
		p.push(stFormulaAsTerm{}, stEndFormula{})
		return nil
	}
	if tok.Type == TokenTypeEqual || tok.Type == TokenTypeNotEqual {
		c.advance()
		p.eqArgs = p.eqArgs + 1
		p.push(stFormulaAsTerm{}, stEndFormula{}, stEndEquality{positive: tok.Type == TokenTypeEqual, tok: tok}, stTerm{})
	}
	return nil
}

// primary reads a variable, constant, application or special term. In
// formula position an application is resolved as a predicate unless an
// equality sign follows it and the name is not a known predicate.
func (p *parser) primary(formula bool) exc.Exception {
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeVariable:
		c.advance()
		p.pushTerm(p.scope.variable(tok.Value), tok)
		return nil
	case TokenTypeInteger, TokenTypeRational, TokenTypeReal:
		c.advance()
		return p.number(tok)
	case TokenTypeString:
		c.advance()
		p.pushTerm(kernel.NewApp(p.sig.StringConstant(tok.Value)), tok)
		return nil
	case TokenTypeName, TokenTypeDollarDollar, TokenTypeTheoryFunction:
		c.advance()
		app := &application{tok: tok, name: tok.Value, base: len(p.built)}
		if !c.is(TokenTypeLeftParen) {
			p.push(stEndApp{app: app, formula: formula})
			return nil
		}
		c.advance()
		p.push(stEndApp{app: app, formula: formula}, stRestoreEquality{saved: p.eqArgs}, stEndArg{closer: TokenTypeRightParen}, stTerm{})
		p.eqArgs = 0
		return nil
	case TokenTypeIte:
		return p.ite()
	case TokenTypeLet:
		return p.let()
	case TokenTypeLeftBracket:
		c.advance()
		p.push(stEndTuple{tok: tok, base: len(p.built)}, stRestoreEquality{saved: p.eqArgs}, stEndArg{closer: TokenTypeRightBracket}, stTerm{})
		p.eqArgs = 0
		return nil
	}
	return c.unexpected(tok, "term expected")
}

func (p *parser) endArg(s stEndArg) exc.Exception {
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeComma:
		c.advance()
		p.push(stEndArg{closer: s.closer}, stTerm{})
		return nil
	case s.closer:
		c.advance()
		return nil
	}
	return c.unexpected(tok, ", or "+s.closer.String()+" expected")
}

// endApp resolves an application once its arguments and the token after it
// are known.
func (p *parser) endApp(s stEndApp) exc.Exception {
	app := s.app
	args := p.popN(len(p.built) - app.base)
	next := p.cur().current()
	_, conn := binaryConnectives[next.Type]
	eq := next.Type == TokenTypeEqual || next.Type == TokenTypeNotEqual
	if app.tok.Type == TokenTypeTheoryFunction {
		return p.theoryApp(app, args, s.formula && !eq)
	}
	// A known predicate next to an equality sign is a boolean term.
	predicate := p.predicateExists(app.name, len(args))
	if !eq {
		predicate = predicate || s.formula || (conn && p.eqArgs == 0)
	}
	if predicate {
		f, err := p.predicateApp(app, p.terms(args))
		if err != nil {
			return err
		}
		p.pushFormula(f, app.tok)
		return nil
	}
	t, err := p.functionApp(app, p.terms(args))
	if err != nil {
		return err
	}
	p.pushTerm(t, app.tok)
	return nil
}

func (p *parser) terms(args []built) []kernel.Term {
	out := make([]kernel.Term, 0, len(args))
	for _, a := range args {
		out = append(out, p.asTerm(a))
	}
	return out
}

// number adds a numeric constant. Untyped dialects read numerals as
// individuals. Values that do not fit become uninterpreted constants named
// by their text.
func (p *parser) number(tok *Token) exc.Exception {
	var n kernel.Number
	var err error
	sort := kernel.SortDefault
	switch tok.Type {
	case TokenTypeInteger:
		n, err = kernel.ParseInteger(tok.Value)
		if p.typed {
			sort = kernel.SortInt
		}
	case TokenTypeRational:
		n, err = kernel.ParseRational(tok.Value)
		if p.typed {
			sort = kernel.SortRat
		}
	default:
		n, err = kernel.ParseReal(tok.Value)
		if p.typed {
			sort = kernel.SortReal
		}
	}
	if err != nil {
		if !errors.Is(err, kernel.ErrOverflow) {
			return p.errorf(tok, exc.CodeInvalidNumber, "wrong number format: %v", err)
		}
		sym, e := p.overflowConstant(tok, sort)
		if e != nil {
			return e
		}
		p.pushTerm(kernel.NewApp(sym), tok)
		return nil
	}
	p.pushTerm(kernel.NewApp(p.sig.NumberConstant(n, sort)), tok)
	return nil
}

func (p *parser) ite() exc.Exception {
	c := p.cur()
	tok := c.advance()
	if _, err := c.expect(TokenTypeLeftParen); err != nil {
		return err
	}
	p.push(
		stRestoreEquality{saved: p.eqArgs},
		stEndIte{tok: tok},
		stTerm{},
		stExpect{kind: TokenTypeComma},
		stTerm{},
		stExpect{kind: TokenTypeComma},
		stFormula{},
	)
	p.eqArgs = 0
	return nil
}

func (p *parser) endIte(s stEndIte) exc.Exception {
	if _, err := p.cur().expect(TokenTypeRightParen); err != nil {
		return err
	}
	args := p.popN(3)
	cond, err := p.asFormula(args[0])
	if err != nil {
		return err
	}
	then := p.asTerm(args[1])
	otherwise := p.asTerm(args[2])
	if then.Sort() != otherwise.Sort() {
		return p.errorf(s.tok, exc.CodeSortMismatch, "$ite branches have different sorts: %s and %s",
			p.sorts.Name(then.Sort()), p.sorts.Name(otherwise.Sort()))
	}
	p.pushTerm(&kernel.Ite{Cond: cond, Then: then, Else: otherwise}, s.tok)
	return nil
}

func (p *parser) endTuple(s stEndTuple) exc.Exception {
	elems := p.terms(p.popN(len(p.built) - s.base))
	if len(elems) < 2 {
		return p.errorf(s.tok, exc.CodeUnsupportedConstruct, "tuples need at least two elements")
	}
	p.pushTerm(kernel.NewTuple(p.sorts, elems), s.tok)
	return nil
}
