// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// pendingUnit is the header of a cnf, fof or tff unit whose formula is being
// read.
type pendingUnit struct {
	name     string
	tok      *Token
	role     kernel.Role
	question bool
	cnf      bool
}

// unitList reads the next top-level item. It is the only state on the stack
// between units, which is where the time limit is checked.
func (p *parser) unitList() exc.Exception {
	if p.ctx.Err() != nil {
		log.Debugf("time limit reached after %d units", len(p.result.Units))
		p.result.TimedOut = true
		return nil
	}
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeEOF:
		if len(p.cursors) > 1 {
			log.Debugf("finished include %s", c.uri)
			p.cursors = p.cursors[:len(p.cursors)-1]
			if err := c.close(); err != nil {
				return exc.WrapUnknown(exc.Location{URI: c.uri}, err)
			}
			p.push(stUnitList{})
		}
		return nil
	case TokenTypeName:
		switch tok.Value {
		case "cnf", "fof", "tff", "thf":
			p.push(stUnitList{})
			return p.unit()
		case "vampire":
			p.push(stUnitList{})
			return p.directive()
		case "include":
			p.push(stUnitList{})
			return p.include()
		}
	}
	return c.unexpected(tok, "cnf(), fof(), tff(), thf(), vampire() or include() expected")
}

func (p *parser) unit() exc.Exception {
	c := p.cur()
	kw := c.advance()
	if _, err := c.expect(TokenTypeLeftParen); err != nil {
		return err
	}
	name, err := c.expectOneOf(TokenTypeName, TokenTypeInteger)
	if err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	roleTok, err := c.expectName("unit role")
	if err != nil {
		return err
	}
	p.typed = kw.Value == "tff" || kw.Value == "thf"
	if p.typed && roleTok.Value == "type" {
		return p.typeDecl()
	}
	role, question, err := p.role(roleTok)
	if err != nil {
		return err
	}
	if p.modelDefinition {
		role = kernel.RoleModelDefinition
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	u := &pendingUnit{
		name:     name.Value,
		tok:      name,
		role:     role,
		question: question,
		cnf:      kw.Value == "cnf",
	}
	p.push(stEndUnit{unit: u}, stFormula{})
	return nil
}

func (p *parser) role(tok *Token) (kernel.Role, bool, exc.Exception) {
	switch tok.Value {
	case "axiom", "plain", "definition":
		return kernel.RoleAxiom, false, nil
	case "extensionality":
		return kernel.RoleExtensionalityAxiom, false, nil
	case "conjecture":
		return kernel.RoleConjecture, false, nil
	case "question":
		return kernel.RoleConjecture, true, nil
	case "negated_conjecture":
		return kernel.RoleNegatedConjecture, false, nil
	case "hypothesis":
		return kernel.RoleHypothesis, false, nil
	case "theorem", "lemma":
		return kernel.RoleAssumption, false, nil
	case "claim":
		return kernel.RoleClaim, false, nil
	case "assumption", "unknown":
		return 0, false, p.errorf(tok, exc.CodeUnsupportedRole, "unsupported unit type %s", tok.Value)
	}
	return 0, false, p.errorf(tok, exc.CodeUnknownRole, "unit type, such as axiom or definition, expected but %s found", tok.Value)
}

func (p *parser) endUnit(s stEndUnit) exc.Exception {
	b := p.pop()
	f, err := p.asFormula(b)
	if err != nil {
		return err
	}
	c := p.cur()
	var src *kernel.Source
	if c.is(TokenTypeComma) {
		c.advance()
		if src, err = p.annotation(); err != nil {
			return err
		}
	}
	if err := c.skipToRPAR(); err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeDot); err != nil {
		return err
	}
	u := s.unit
	if !c.keep(u.name) {
		log.Debugf("skipping unit %s of %s", u.name, c.uri)
		return nil
	}
	unit := &kernel.Unit{
		Name:     u.name,
		Role:     u.role,
		Question: u.question,
		Included: len(p.cursors) > 1,
		Color:    p.color,
		Source:   src,
	}
	if u.cnf {
		clause, keep, err := p.clause(f, b.tok)
		if err != nil {
			return err
		}
		if !keep {
			log.Debugf("dropping tautology %s", u.name)
			return nil
		}
		unit.Clause = clause
	} else {
		unit.Formula = f
	}
	switch u.role {
	case kernel.RoleConjecture:
		if u.cnf {
			return p.errorf(u.tok, exc.CodeUnsupportedRole, "conjecture is not allowed in cnf")
		}
		if p.seenConjecture {
			return p.errorf(u.tok, exc.CodeMultipleConjectures, "only a single conjecture is supported in a problem")
		}
		p.seenConjecture = true
		unit = derived(unit, kernel.NewNegation(kernel.UniversalClosure(f)), kernel.InferenceNegatedConjecture)
	case kernel.RoleClaim:
		sym, added := p.sig.AddPredicate(u.name, 0)
		if !added {
			return p.errorf(u.tok, exc.CodeDuplicateDeclaration, "names of claims must be unique: %s", u.name)
		}
		sym.Label = true
		label := kernel.NewAtom(kernel.NewLiteral(sym, true))
		unit = derived(unit, &kernel.Binary{Conn: kernel.ConnIff, Left: label, Right: kernel.UniversalClosure(f)}, kernel.InferenceClaimDefinition)
	}
	log.Debugf("unit %s", unit.Name)
	p.result.Units = append(p.result.Units, unit)
	return nil
}

// derived builds the unit inferred from parent as a formula unit.
func derived(parent *kernel.Unit, f kernel.Formula, inference kernel.Inference) *kernel.Unit {
	return &kernel.Unit{
		Name:      parent.Name,
		Role:      parent.Role,
		Formula:   f,
		Question:  parent.Question,
		Included:  parent.Included,
		Color:     parent.Color,
		Source:    parent.Source,
		Inference: inference,
		Parent:    parent,
	}
}

// clause converts the body of a cnf unit. It reports false when the clause
// contains $true and is to be dropped.
func (p *parser) clause(f kernel.Formula, tok *Token) (*kernel.Clause, bool, exc.Exception) {
	out := &kernel.Clause{}
	stack := []kernel.Formula{f}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch h := g.(type) {
		case *kernel.Junction:
			if h.Conn != kernel.ConnOr {
				return nil, false, p.notCNF(f, tok)
			}
			for x := len(h.Args) - 1; x >= 0; x = x - 1 {
				stack = append(stack, h.Args[x])
			}
		case *kernel.Negation, *kernel.Atom:
			positive := true
			for {
				n, ok := g.(*kernel.Negation)
				if !ok {
					break
				}
				g = n.Arg
				positive = !positive
			}
			a, ok := g.(*kernel.Atom)
			if !ok {
				return nil, false, p.notCNF(f, tok)
			}
			l := a.Literal
			if !positive {
				l = l.Complement()
			}
			out.Literals = append(out.Literals, l)
		case *kernel.Constant:
			if h.Value {
				return nil, false, nil
			}
		default:
			return nil, false, p.notCNF(f, tok)
		}
	}
	return out, true, nil
}

func (p *parser) notCNF(f kernel.Formula, tok *Token) exc.Exception {
	return p.errorf(tok, exc.CodeNotCNF, "input formula not in CNF: %s", f)
}

// annotation reads the functor and arguments of a source annotation such as
// file('a.p', c1) or inference(...). Anything after it is skipped by the
// caller.
func (p *parser) annotation() (*kernel.Source, exc.Exception) {
	c := p.cur()
	if !p.config.collectSources || !c.is(TokenTypeName) || c.peek(1).Type != TokenTypeLeftParen {
		return nil, nil
	}
	kind := c.advance()
	c.advance()
	src := &kernel.Source{Kind: kind.Value}
	var arg strings.Builder
	depth := 0
	for {
		t := c.current()
		switch t.Type {
		case TokenTypeEOF, TokenTypeError:
			return nil, c.unexpected(t, ") expected")
		case TokenTypeLeftParen, TokenTypeLeftBracket:
			depth = depth + 1
		case TokenTypeRightBracket:
			depth = depth - 1
		case TokenTypeRightParen:
			if depth == 0 {
				c.advance()
				src.Args = append(src.Args, arg.String())
				return src, nil
			}
			depth = depth - 1
		case TokenTypeComma:
			if depth == 0 {
				c.advance()
				src.Args = append(src.Args, arg.String())
				arg.Reset()
				continue
			}
		}
		arg.WriteString(tokenText(t))
		c.advance()
	}
}

// tokenText renders a token as it could be written in the input.
func tokenText(t *Token) string {
	switch t.Type {
	case TokenTypeName:
		if plainName(t.Value) {
			return t.Value
		}
		return "'" + escapeQuoted(t.Value, '\'') + "'"
	case TokenTypeString:
		return `"` + escapeQuoted(t.Value, '"') + `"`
	}
	return t.Value
}

func plainName(v string) bool {
	if v == "" {
		return false
	}
	if v[0] == '$' {
		return true
	}
	if v[0] < 'a' || v[0] > 'z' {
		return false
	}
	for _, r := range v[1:] {
		if !isWordChar(r) || r == '$' {
			return false
		}
	}
	return true
}

func escapeQuoted(v string, delim rune) string {
	var b strings.Builder
	for _, r := range v {
		if r == '\\' || r == delim {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
