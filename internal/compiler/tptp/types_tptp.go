// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

type typeOp uint8

const (
	typeOpNone typeOp = iota
	typeOpProduct
	typeOpArrow
)

type typeKind uint8

const (
	typeAtomic typeKind = iota
	typeProduct
	typeArrow
)

// typeExpr is a type as written: a sort, a product of types or an arrow from
// a domain to a result.
type typeExpr struct {
	kind typeKind
	sort kernel.SortID
	args []*typeExpr
	tok  *Token
}

func (p *parser) pushType(t *typeExpr) {
	p.types = append(p.types, t)
}

func (p *parser) popType() *typeExpr {
	if len(p.types) == 0 {
		panic("tptp: type stack underflow")
	}
	t := p.types[len(p.types)-1]
	p.types = p.types[:len(p.types)-1]
	return t
}

func (p *parser) typeExpr() exc.Exception {
	p.push(stEndType{}, stSimpleType{})
	return nil
}

func (p *parser) simpleType() exc.Exception {
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeLeftParen:
		c.advance()
		p.push(stExpect{kind: TokenTypeRightParen}, stType{})
		return nil
	case TokenTypeForallType:
		return c.fail(tok, exc.CodeUnsupportedConstruct, "polymorphic types are not supported")
	case TokenTypeTType:
		return c.fail(tok, exc.CodeUnsupportedConstruct, "$tType can only be used to declare a sort")
	}
	sort, err := p.readSort()
	if err != nil {
		return err
	}
	p.pushType(&typeExpr{kind: typeAtomic, sort: sort, tok: tok})
	return nil
}

// endType combines the pending operator with the type just read and looks
// for the next one. Both operators associate to the left.
func (p *parser) endType(s stEndType) exc.Exception {
	switch s.op {
	case typeOpProduct:
		right := p.popType()
		left := p.popType()
		if left.kind == typeProduct {
			left.args = append(left.args, right)
			p.pushType(left)
		} else {
			p.pushType(&typeExpr{kind: typeProduct, args: []*typeExpr{left, right}, tok: left.tok})
		}
	case typeOpArrow:
		right := p.popType()
		left := p.popType()
		p.pushType(&typeExpr{kind: typeArrow, args: []*typeExpr{left, right}, tok: left.tok})
	}
	c := p.cur()
	switch c.current().Type {
	case TokenTypeStar:
		c.advance()
		p.push(stEndType{op: typeOpProduct}, stSimpleType{})
	case TokenTypeArrow:
		c.advance()
		p.push(stEndType{op: typeOpArrow}, stSimpleType{})
	}
	return nil
}

// operatorType flattens a type tree into the type of a symbol.
func (p *parser) operatorType(t *typeExpr) (*kernel.OperatorType, exc.Exception) {
	switch t.kind {
	case typeAtomic:
		return kernel.ConstantType(t.sort), nil
	case typeProduct:
		return nil, p.errorf(t.tok, exc.CodeUnsupportedConstruct, "product types are only allowed as the domain of an arrow")
	}
	domain, result := t.args[0], t.args[1]
	if result.kind != typeAtomic {
		return nil, p.errorf(result.tok, exc.CodeUnsupportedConstruct, "the result of an arrow type must be a sort")
	}
	out := &kernel.OperatorType{Result: result.sort}
	switch domain.kind {
	case typeAtomic:
		out.Args = []kernel.SortID{domain.sort}
	case typeProduct:
		for _, a := range domain.args {
			if a.kind != typeAtomic {
				return nil, p.errorf(a.tok, exc.CodeUnsupportedConstruct, "nested types are not supported")
			}
			out.Args = append(out.Args, a.sort)
		}
	default:
		return nil, p.errorf(domain.tok, exc.CodeUnsupportedConstruct, "nested arrow types are not supported")
	}
	return out, nil
}

// readSort reads one sort. Array and tuple sorts nest only through their
// element sorts.
func (p *parser) readSort() (kernel.SortID, exc.Exception) {
	c := p.cur()
	tok := c.current()
	switch tok.Type {
	case TokenTypeDefaultType:
		c.advance()
		return kernel.SortDefault, nil
	case TokenTypeBoolType:
		c.advance()
		return kernel.SortBool, nil
	case TokenTypeIntType:
		c.advance()
		return kernel.SortInt, nil
	case TokenTypeRatType:
		c.advance()
		return kernel.SortRat, nil
	case TokenTypeRealType:
		c.advance()
		return kernel.SortReal, nil
	case TokenTypeName, TokenTypeDollarDollar:
		c.advance()
		id, ok := p.sorts.Find(tok.Value)
		if !ok {
			return 0, p.errorf(tok, exc.CodeUndeclaredSort, "sort %s is not declared", tok.Value)
		}
		return id, nil
	case TokenTypeTheorySort:
		c.advance()
		if _, err := c.expect(TokenTypeLeftParen); err != nil {
			return 0, err
		}
		index, err := p.readSort()
		if err != nil {
			return 0, err
		}
		if _, err := c.expect(TokenTypeComma); err != nil {
			return 0, err
		}
		value, err := p.readSort()
		if err != nil {
			return 0, err
		}
		if _, err := c.expect(TokenTypeRightParen); err != nil {
			return 0, err
		}
		return p.sorts.Array(index, value), nil
	case TokenTypeLeftBracket:
		c.advance()
		var elems []kernel.SortID
		for {
			elem, err := p.readSort()
			if err != nil {
				return 0, err
			}
			elems = append(elems, elem)
			sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightBracket)
			if err != nil {
				return 0, err
			}
			if sep.Type == TokenTypeRightBracket {
				break
			}
		}
		if len(elems) < 2 {
			return 0, p.errorf(tok, exc.CodeUnsupportedConstruct, "tuple sorts need at least two elements")
		}
		return p.sorts.Tuple(elems), nil
	}
	return 0, c.unexpected(tok, "sort expected")
}

// typeDecl reads the body of tff(name, type, ...). A $tType declaration
// introduces a sort; anything else is the type of a symbol.
func (p *parser) typeDecl() exc.Exception {
	c := p.cur()
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	parens := 0
	for c.is(TokenTypeLeftParen) {
		c.advance()
		parens = parens + 1
	}
	name, err := c.expectName("symbol or sort name")
	if err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeColon); err != nil {
		return err
	}
	if !c.is(TokenTypeTType) {
		p.push(stEndTypeDecl{name: name, parens: parens}, stType{})
		return nil
	}
	c.advance()
	if err := p.closeUnit(parens); err != nil {
		return err
	}
	if _, added := p.sorts.AddSort(name.Value); added {
		log.Debugf("declared sort %s", name.Value)
	}
	return nil
}

func (p *parser) endTypeDecl(s stEndTypeDecl) exc.Exception {
	te := p.popType()
	if err := p.closeUnit(s.parens); err != nil {
		return err
	}
	t, err := p.operatorType(te)
	if err != nil {
		return err
	}
	name := s.name.Value
	if err := p.checkCollision(s.name, name); err != nil {
		return err
	}
	var sym *kernel.Symbol
	var added bool
	if t.Predicate() {
		sym, added = p.sig.AddPredicate(name, t.Arity())
	} else {
		sym, added = p.sig.AddFunction(name, t.Arity())
	}
	if !added && !sym.Type.Equal(t) {
		return p.errorf(s.name, exc.CodeDuplicateDeclaration, "%s is declared with type %s but already has type %s",
			name, p.sorts.TypeString(t), p.sorts.TypeString(sym.Type))
	}
	sym.Type = t
	log.Debugf("declared %s: %s", name, p.sorts.TypeString(t))
	return nil
}

// closeUnit reads the parentheses left open by a declaration and the end of
// the unit.
func (p *parser) closeUnit(parens int) exc.Exception {
	c := p.cur()
	for x := 0; x <= parens; x = x + 1 {
		if _, err := c.expect(TokenTypeRightParen); err != nil {
			return err
		}
	}
	_, err := c.expect(TokenTypeDot)
	return err
}
