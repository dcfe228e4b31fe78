// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// letExpr is a $let being read. Its frame collects the defined symbols,
// which become visible only once the body starts.
type letExpr struct {
	tok   *Token
	frame *letFrame
	types map[string]*kernel.OperatorType
	defs  []*letDef
}

// letDef is one definition. Tuple definitions bind several constants at
// once and have names instead of a single symbol.
type letDef struct {
	name    *Token
	names   []*Token
	vars    []*kernel.Var
	sym     *kernel.Symbol
	syms    []*kernel.Symbol
	binding kernel.Term
}

func (p *parser) let() exc.Exception {
	c := p.cur()
	tok := c.advance()
	if _, err := c.expect(TokenTypeLeftParen); err != nil {
		return err
	}
	let := &letExpr{
		tok:   tok,
		frame: newLetFrame(),
		types: make(map[string]*kernel.OperatorType),
	}
	p.push(stRestoreEquality{saved: p.eqArgs})
	p.eqArgs = 0
	typed := (c.is(TokenTypeName) && c.peek(1).Type == TokenTypeColon) ||
		(c.is(TokenTypeLeftBracket) && c.peek(1).Type == TokenTypeName && c.peek(2).Type == TokenTypeColon)
	if typed {
		list := c.is(TokenTypeLeftBracket)
		if list {
			c.advance()
		}
		p.push(stLetType{let: let, list: list})
		return nil
	}
	p.startDefinitions(let)
	return nil
}

// startDefinitions decides between a bracketed list of definitions and a
// single one. A bracket followed by a name and a comma opens a tuple
// definition instead of a list.
func (p *parser) startDefinitions(let *letExpr) {
	c := p.cur()
	tuple := c.is(TokenTypeLeftBracket) && c.peek(1).Type == TokenTypeName &&
		(c.peek(2).Type == TokenTypeComma || c.peek(2).Type == TokenTypeRightBracket)
	if c.is(TokenTypeLeftBracket) && !tuple {
		c.advance()
		p.push(stDefinition{let: let, list: true})
		return
	}
	p.push(stDefinition{let: let})
}

func (p *parser) letType(s stLetType) exc.Exception {
	c := p.cur()
	name, err := c.expectName("symbol name")
	if err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeColon); err != nil {
		return err
	}
	p.push(stEndLetType{let: s.let, name: name, list: s.list}, stType{})
	return nil
}

func (p *parser) endLetType(s stEndLetType) exc.Exception {
	t, err := p.operatorType(p.popType())
	if err != nil {
		return err
	}
	if _, ok := s.let.types[s.name.Value]; ok {
		return p.errorf(s.name, exc.CodeDuplicateDeclaration, "%s is declared twice in $let", s.name.Value)
	}
	s.let.types[s.name.Value] = t
	c := p.cur()
	if s.list {
		sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightBracket)
		if err != nil {
			return err
		}
		if sep.Type == TokenTypeComma {
			p.push(stLetType{let: s.let, list: true})
			return nil
		}
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	p.startDefinitions(s.let)
	return nil
}

// definition reads the left-hand side of a definition and binds its
// variables for the right-hand side.
func (p *parser) definition(s stDefinition) exc.Exception {
	c := p.cur()
	def := &letDef{}
	if c.is(TokenTypeLeftBracket) {
		c.advance()
		for {
			name, err := c.expectName("constant name")
			if err != nil {
				return err
			}
			def.names = append(def.names, name)
			sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightBracket)
			if err != nil {
				return err
			}
			if sep.Type == TokenTypeRightBracket {
				break
			}
		}
		if _, err := c.expect(TokenTypeAssign); err != nil {
			return err
		}
		p.scope.pushFrame()
		p.push(stEndDefinition{let: s.let, def: def, list: s.list}, stTerm{})
		return nil
	}
	name, err := c.expectName("symbol name")
	if err != nil {
		return err
	}
	def.name = name
	var vars []quantVar
	annotated := make(map[string]bool)
	if c.is(TokenTypeLeftParen) {
		c.advance()
		for {
			v, err := c.expect(TokenTypeVariable)
			if err != nil {
				return err
			}
			for _, prev := range vars {
				if prev.tok.Value == v.Value {
					return p.errorf(v, exc.CodeDuplicateDeclaration, "variable %s occurs twice in the definition of %s", v.Value, name.Value)
				}
			}
			sort := kernel.SortDefault
			if c.is(TokenTypeColon) {
				c.advance()
				if sort, err = p.readSort(); err != nil {
					return err
				}
				annotated[v.Value] = true
			}
			vars = append(vars, quantVar{tok: v, sort: sort})
			sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightParen)
			if err != nil {
				return err
			}
			if sep.Type == TokenTypeRightParen {
				break
			}
		}
	}
	if declared, ok := s.let.types[name.Value]; ok {
		if declared.Arity() != len(vars) {
			return p.errorf(name, exc.CodeArityMismatch, "%s is declared with %d arguments but defined with %d", name.Value, declared.Arity(), len(vars))
		}
		for x := range vars {
			if annotated[vars[x].tok.Value] && vars[x].sort != declared.Args[x] {
				return p.errorf(vars[x].tok, exc.CodeSortMismatch, "variable %s has sort %s but %s is declared",
					vars[x].tok.Value, p.sorts.Name(vars[x].sort), p.sorts.Name(declared.Args[x]))
			}
			vars[x].sort = declared.Args[x]
		}
	}
	if _, err := c.expect(TokenTypeAssign); err != nil {
		return err
	}
	p.scope.pushFrame()
	for _, v := range vars {
		def.vars = append(def.vars, p.scope.bindVariable(v.tok.Value, v.sort))
	}
	p.push(stEndDefinition{let: s.let, def: def, list: s.list}, stTerm{})
	return nil
}

// endDefinition releases the definition's variables and creates the symbols
// it defines. After the last definition the symbols become visible and the
// body is read.
func (p *parser) endDefinition(s stEndDefinition) exc.Exception {
	p.scope.popFrame()
	binding := p.asTerm(p.pop())
	let, def := s.let, s.def
	if def.names != nil {
		sort := binding.Sort()
		elems := p.sorts.TupleElements(sort)
		if p.sorts.Kind(sort) != kernel.SortKindTuple || len(elems) != len(def.names) {
			return p.errorf(def.names[0], exc.CodeSortMismatch, "%d constants cannot be bound to a term of sort %s", len(def.names), p.sorts.Name(sort))
		}
		for x, name := range def.names {
			t := kernel.ConstantType(elems[x])
			if err := p.checkLetType(let, name, t); err != nil {
				return err
			}
			sym := p.sig.AddFresh(name.Value, t)
			if !p.scope.defineLetSymbol(let.frame, name.Value, 0, sym) {
				return p.errorf(name, exc.CodeDuplicateDeclaration, "%s defined twice", name.Value)
			}
			def.syms = append(def.syms, sym)
		}
	} else {
		t := &kernel.OperatorType{Result: binding.Sort()}
		for _, v := range def.vars {
			t.Args = append(t.Args, v.Sort())
		}
		if err := p.checkLetType(let, def.name, t); err != nil {
			return err
		}
		sym := p.sig.AddFresh(def.name.Value, t)
		if !p.scope.defineLetSymbol(let.frame, def.name.Value, len(def.vars), sym) {
			return p.errorf(def.name, exc.CodeDuplicateDeclaration, "%s defined twice", def.name.Value)
		}
		def.sym = sym
	}
	def.binding = binding
	let.defs = append(let.defs, def)
	c := p.cur()
	if s.list {
		sep, err := c.expectOneOf(TokenTypeComma, TokenTypeRightBracket)
		if err != nil {
			return err
		}
		if sep.Type == TokenTypeComma {
			p.push(stDefinition{let: let, list: true})
			return nil
		}
	}
	if _, err := c.expect(TokenTypeComma); err != nil {
		return err
	}
	p.scope.pushLetFrame(let.frame)
	p.push(stEndLet{let: let}, stTerm{})
	return nil
}

func (p *parser) checkLetType(let *letExpr, name *Token, t *kernel.OperatorType) exc.Exception {
	declared, ok := let.types[name.Value]
	if !ok || declared.Equal(t) {
		return nil
	}
	return p.errorf(name, exc.CodeSortMismatch, "%s is declared as %s but defined as %s",
		name.Value, p.sorts.TypeString(declared), p.sorts.TypeString(t))
}

// endLet closes the body and nests one let term per definition, the first
// definition outermost.
func (p *parser) endLet(s stEndLet) exc.Exception {
	p.scope.popLetFrame()
	body := p.asTerm(p.pop())
	if _, err := p.cur().expect(TokenTypeRightParen); err != nil {
		return err
	}
	for x := len(s.let.defs) - 1; x >= 0; x = x - 1 {
		def := s.let.defs[x]
		if def.names != nil {
			body = &kernel.TupleLet{Symbols: def.syms, Binding: def.binding, Body: body}
			continue
		}
		body = &kernel.Let{Symbol: def.sym, Vars: def.vars, Binding: def.binding, Body: body}
	}
	p.pushTerm(body, s.let.tok)
	return nil
}
