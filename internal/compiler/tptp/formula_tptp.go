// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

type connective uint8

const (
	connIff connective = iota
	connXor
	connImp
	connRevImp
	connOr
	connNotOr
	connAnd
	connNotAnd
)

var binaryConnectives = map[TokenType]connective{
	TokenTypeIff:          connIff,
	TokenTypeXor:          connXor,
	TokenTypeImply:        connImp,
	TokenTypeReverseImply: connRevImp,
	TokenTypeOr:           connOr,
	TokenTypeNotOr:        connNotOr,
	TokenTypeAnd:          connAnd,
	TokenTypeNotAnd:       connNotAnd,
}

// level orders the connectives from weakest to strongest binding.
func (c connective) level() int {
	switch c {
	case connIff:
		return 0
	case connXor:
		return 1
	case connImp, connRevImp:
		return 2
	case connOr, connNotOr:
		return 3
	default:
		return 4
	}
}

// reduceBefore reports whether op, which is waiting for its right operand,
// must be applied before next is read. Equal levels associate to the right
// except for the equivalences.
func reduceBefore(op connective, next connective) bool {
	if op.level() != next.level() {
		return op.level() > next.level()
	}
	return op == connIff || op == connXor
}

func combine(c connective, l kernel.Formula, r kernel.Formula) kernel.Formula {
	switch c {
	case connIff:
		return &kernel.Binary{Conn: kernel.ConnIff, Left: l, Right: r}
	case connXor:
		return &kernel.Binary{Conn: kernel.ConnXor, Left: l, Right: r}
	case connImp:
		return &kernel.Binary{Conn: kernel.ConnImp, Left: l, Right: r}
	case connRevImp:
		return &kernel.Binary{Conn: kernel.ConnImp, Left: r, Right: l}
	case connOr:
		return kernel.NewJunction(kernel.ConnOr, l, r)
	case connNotOr:
		return kernel.NewNegation(kernel.NewJunction(kernel.ConnOr, l, r))
	case connAnd:
		return kernel.NewJunction(kernel.ConnAnd, l, r)
	default:
		return kernel.NewNegation(kernel.NewJunction(kernel.ConnAnd, l, r))
	}
}

type pendingOp struct {
	conn connective
	tok  *Token
}

func (p *parser) formula() exc.Exception {
	p.push(stEndFormula{}, stSimpleFormula{})
	return nil
}

func (p *parser) endFormula(s stEndFormula) exc.Exception {
	c := p.cur()
	tok := c.current()
	if conn, ok := binaryConnectives[tok.Type]; ok {
		c.advance()
		ops := s.ops
		for len(ops) > 0 && reduceBefore(ops[len(ops)-1].conn, conn) {
			if err := p.reduce(ops[len(ops)-1]); err != nil {
				return err
			}
			ops = ops[:len(ops)-1]
		}
		ops = append(ops[:len(ops):len(ops)], pendingOp{conn: conn, tok: tok})
		p.push(stEndFormula{ops: ops}, stSimpleFormula{})
		return nil
	}
	if tok.Type == TokenTypeEqual || tok.Type == TokenTypeNotEqual {
		// A complete formula compared as a boolean term.
		c.advance()
		p.eqArgs = p.eqArgs + 1
		p.push(stEndFormula{ops: s.ops}, stEndEquality{positive: tok.Type == TokenTypeEqual, tok: tok}, stTerm{})
		return nil
	}
	for x := len(s.ops) - 1; x >= 0; x = x - 1 {
		if err := p.reduce(s.ops[x]); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) reduce(op pendingOp) exc.Exception {
	args := p.popN(2)
	l, err := p.asFormula(args[0])
	if err != nil {
		return err
	}
	r, err := p.asFormula(args[1])
	if err != nil {
		return err
	}
	p.pushFormula(combine(op.conn, l, r), args[0].tok)
	return nil
}

func (p *parser) simpleFormula() exc.Exception {
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeNot:
		c.advance()
		p.push(stNegate{}, stSimpleFormula{})
		return nil
	case TokenTypeLeftParen:
		c.advance()
		p.push(stExpect{kind: TokenTypeRightParen}, stFormula{})
		return nil
	case TokenTypeForall, TokenTypeExists:
		return p.quantifier()
	case TokenTypeTrue:
		c.advance()
		p.pushFormula(kernel.True, tok)
		return nil
	case TokenTypeFalse:
		c.advance()
		p.pushFormula(kernel.False, tok)
		return nil
	case TokenTypePi, TokenTypeSigma, TokenTypeForallType, TokenTypeExistsType,
		TokenTypeLambda, TokenTypeApply, TokenTypeApplyPlus, TokenTypeApplyMinus,
		TokenTypeSequent, TokenTypeSubtype:
		return c.fail(tok, exc.CodeUnsupportedConstruct, "higher-order syntax is not supported")
	}
	if startsTerm(tok.Type) {
		p.push(stAtom{})
		return p.primary(true)
	}
	return c.unexpected(tok, "formula or term expected")
}

func (p *parser) negate() exc.Exception {
	b := p.pop()
	f, err := p.asFormula(b)
	if err != nil {
		return err
	}
	p.pushFormula(kernel.NewNegation(f), b.tok)
	return nil
}

type quantVar struct {
	tok  *Token
	sort kernel.SortID
}

// quantifier reads the variable list and binds it for the body.
func (p *parser) quantifier() exc.Exception {
	c := p.cur()
	q := c.advance()
	conn := kernel.ConnForall
	if q.Type == TokenTypeExists {
		conn = kernel.ConnExists
	}
	if _, err := c.expect(TokenTypeLeftBracket); err != nil {
		return err
	}
	var vars []quantVar
	seen := make(map[string]kernel.SortID)
	for {
		v, err := c.expect(TokenTypeVariable)
		if err != nil {
			return err
		}
		sort := kernel.SortDefault
		if c.is(TokenTypeColon) {
			c.advance()
			if sort, err = p.readSort(); err != nil {
				return err
			}
		}
		if prev, ok := seen[v.Value]; ok {
			if prev != sort {
				return p.errorf(v, exc.CodeSortMismatch, "variable %s is bound twice with different sorts", v.Value)
			}
		} else {
			seen[v.Value] = sort
			vars = append(vars, quantVar{tok: v, sort: sort})
		}
		sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightBracket)
		if err != nil {
			return err
		}
		if sep.Type == TokenTypeRightBracket {
			break
		}
	}
	if _, err := c.expect(TokenTypeColon); err != nil {
		return err
	}
	p.scope.pushFrame()
	bound := make([]*kernel.Var, 0, len(vars))
	for _, v := range vars {
		bound = append(bound, p.scope.bindVariable(v.tok.Value, v.sort))
	}
	p.push(stQuantify{conn: conn, vars: bound}, stSimpleFormula{})
	return nil
}

func (p *parser) quantify(s stQuantify) exc.Exception {
	p.scope.popFrame()
	b := p.pop()
	f, err := p.asFormula(b)
	if err != nil {
		return err
	}
	p.pushFormula(&kernel.Quantified{Conn: s.conn, Vars: s.vars, Body: f}, b.tok)
	return nil
}

func (p *parser) atom() exc.Exception {
	c := p.cur()
	tok := c.current()
	if tok.Type == TokenTypeEqual || tok.Type == TokenTypeNotEqual {
		c.advance()
		p.eqArgs = p.eqArgs + 1
		p.push(stEndEquality{positive: tok.Type == TokenTypeEqual, tok: tok}, stTerm{})
		return nil
	}
	b := p.pop()
	f, err := p.asFormula(b)
	if err != nil {
		return err
	}
	p.pushFormula(f, b.tok)
	return nil
}

func (p *parser) endEquality(s stEndEquality) exc.Exception {
	p.eqArgs = p.eqArgs - 1
	args := p.popN(2)
	l := p.asTerm(args[0])
	r := p.asTerm(args[1])
	if l.Sort() != r.Sort() {
		return p.errorf(s.tok, exc.CodeSortMismatch, "cannot compare %s of sort %s with %s of sort %s",
			l, p.sorts.Name(l.Sort()), r, p.sorts.Name(r.Sort()))
	}
	p.pushFormula(kernel.NewAtom(kernel.NewEquality(s.positive, l, r)), args[0].tok)
	return nil
}

func (p *parser) formulaAsTerm() exc.Exception {
	b := p.pop()
	p.pushTerm(p.asTerm(b), b.tok)
	return nil
}
