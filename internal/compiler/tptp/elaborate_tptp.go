// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"strings"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

const (
	// distinctGroupMin is the smallest $distinct that is registered as a
	// group instead of being expanded into disequalities.
	distinctGroupMin = 5
)

func interpretedPredicate(name string, arity int) bool {
	switch name {
	case "$evaleq", "$equal", "$distinct":
		return true
	case "$is_int", "$is_rat":
		return arity == 1
	case "$less", "$lesseq", "$greater", "$greatereq", "$divides":
		return arity == 2
	}
	return false
}

// predicateExists reports whether name and arity already denote a predicate
// in the let scope, the signature or the arithmetic theory.
func (p *parser) predicateExists(name string, arity int) bool {
	if sym, ok := p.scope.lookupLetSymbol(name, arity); ok {
		return sym.Predicate
	}
	if _, ok := p.sig.Predicate(name, arity); ok {
		return true
	}
	return interpretedPredicate(name, arity)
}

func (p *parser) predicateApp(app *application, args []kernel.Term) (kernel.Formula, exc.Exception) {
	arity := len(args)
	if sym, ok := p.scope.lookupLetSymbol(app.name, arity); ok {
		if err := p.checkArgs(app.tok, sym, args); err != nil {
			return nil, err
		}
		if sym.Predicate {
			return kernel.NewAtom(kernel.NewLiteral(sym, true, args...)), nil
		}
		return p.asFormula(built{term: kernel.NewApp(sym, args...), tok: app.tok})
	}
	if sym, ok := p.sig.Predicate(app.name, arity); ok {
		if err := p.checkArgs(app.tok, sym, args); err != nil {
			return nil, err
		}
		return kernel.NewAtom(kernel.NewLiteral(sym, true, args...)), nil
	}
	switch app.name {
	case "$evaleq", "$equal":
		if arity != 2 {
			return nil, p.errorf(app.tok, exc.CodeArityMismatch, "%s expects 2 arguments but was given %d", app.name, arity)
		}
		if args[0].Sort() != args[1].Sort() {
			return nil, p.errorf(app.tok, exc.CodeSortMismatch, "cannot compare %s of sort %s with %s of sort %s",
				args[0], p.sorts.Name(args[0].Sort()), args[1], p.sorts.Name(args[1].Sort()))
		}
		return kernel.NewAtom(kernel.NewEquality(true, args[0], args[1])), nil
	case "$distinct":
		return p.distinct(app, args)
	}
	if op, ok := kernel.LookupArithmetic(app.name); ok {
		if !op.Predicate() {
			return nil, p.errorf(app.tok, exc.CodeSortMismatch, "%s is a function and cannot be used as a formula", app.name)
		}
		sym, err := p.arithmetic(app, args)
		if err != nil {
			return nil, err
		}
		return kernel.NewAtom(kernel.NewLiteral(sym, true, args...)), nil
	}
	sym, err := p.newSymbol(app, arity, true)
	if err != nil {
		return nil, err
	}
	if err := p.checkArgs(app.tok, sym, args); err != nil {
		return nil, err
	}
	return kernel.NewAtom(kernel.NewLiteral(sym, true, args...)), nil
}

func (p *parser) functionApp(app *application, args []kernel.Term) (kernel.Term, exc.Exception) {
	arity := len(args)
	if sym, ok := p.scope.lookupLetSymbol(app.name, arity); ok {
		if err := p.checkArgs(app.tok, sym, args); err != nil {
			return nil, err
		}
		return kernel.NewApp(sym, args...), nil
	}
	if sym, ok := p.sig.Function(app.name, arity); ok {
		if sym.Overflow {
			return nil, p.checkCollision(app.tok, app.name)
		}
		if err := p.checkArgs(app.tok, sym, args); err != nil {
			return nil, err
		}
		return kernel.NewApp(sym, args...), nil
	}
	if _, ok := kernel.LookupArithmetic(app.name); ok {
		sym, err := p.arithmetic(app, args)
		if err != nil {
			return nil, err
		}
		return kernel.NewApp(sym, args...), nil
	}
	sym, err := p.newSymbol(app, arity, false)
	if err != nil {
		return nil, err
	}
	if err := p.checkArgs(app.tok, sym, args); err != nil {
		return nil, err
	}
	return kernel.NewApp(sym, args...), nil
}

// newSymbol adds an undeclared symbol with the default type. Unknown dollar
// words are not user symbols.
func (p *parser) newSymbol(app *application, arity int, predicate bool) (*kernel.Symbol, exc.Exception) {
	if strings.HasPrefix(app.name, "$") && !strings.HasPrefix(app.name, "$$") {
		return nil, p.errorf(app.tok, exc.CodeUndeclaredSymbol, "unrecognized interpreted symbol %s", app.name)
	}
	if err := p.checkCollision(app.tok, app.name); err != nil {
		return nil, err
	}
	if predicate {
		sym, _ := p.sig.AddPredicate(app.name, arity)
		return sym, nil
	}
	if _, ok := p.sig.Predicate(app.name, arity); ok {
		return nil, p.errorf(app.tok, exc.CodeNameCollision, "%s/%d is a predicate and cannot be used as a function", app.name, arity)
	}
	sym, _ := p.sig.AddFunction(app.name, arity)
	return sym, nil
}

func (p *parser) checkArgs(tok *Token, sym *kernel.Symbol, args []kernel.Term) exc.Exception {
	for x, arg := range args {
		if want := sym.Type.Args[x]; arg.Sort() != want {
			return p.errorf(tok, exc.CodeSortMismatch, "argument %d of %s has sort %s but %s is expected",
				x+1, sym.Name, p.sorts.Name(arg.Sort()), p.sorts.Name(want))
		}
	}
	return nil
}

// arithmetic picks the overload of an arithmetic symbol from the sort of its
// arguments, which must all agree.
func (p *parser) arithmetic(app *application, args []kernel.Term) (*kernel.Symbol, exc.Exception) {
	op, _ := kernel.LookupArithmetic(app.name)
	if len(args) != op.Arity() {
		return nil, p.errorf(app.tok, exc.CodeArityMismatch, "%s expects %d arguments but was given %d", app.name, op.Arity(), len(args))
	}
	sort := args[0].Sort()
	for x, arg := range args[1:] {
		if arg.Sort() != sort {
			return nil, p.errorf(app.tok, exc.CodeSortMismatch, "argument %d of %s has sort %s but argument 1 has sort %s",
				x+2, app.name, p.sorts.Name(arg.Sort()), p.sorts.Name(sort))
		}
	}
	itp, err := kernel.ResolveArithmetic(app.name, sort)
	if err != nil {
		return nil, p.errorf(app.tok, exc.CodeSortMismatch, "%s", err.Error())
	}
	return p.sig.Interpreted(itp), nil
}

// distinct expands a small $distinct into pairwise disequalities. A larger one
// over constants is registered with the signature and holds trivially.
func (p *parser) distinct(app *application, args []kernel.Term) (kernel.Formula, exc.Exception) {
	if len(args) < 2 {
		return kernel.True, nil
	}
	for x, arg := range args[1:] {
		if arg.Sort() != args[0].Sort() {
			return nil, p.errorf(app.tok, exc.CodeSortMismatch, "argument %d of $distinct has sort %s but argument 1 has sort %s",
				x+2, p.sorts.Name(arg.Sort()), p.sorts.Name(args[0].Sort()))
		}
	}
	if len(args) >= distinctGroupMin {
		constants := make([]*kernel.Symbol, 0, len(args))
		for _, arg := range args {
			a, ok := arg.(*kernel.App)
			if !ok || len(a.Args) > 0 {
				break
			}
			constants = append(constants, a.Symbol)
		}
		if len(constants) == len(args) {
			p.sig.AddDistinctGroup(constants)
			return kernel.True, nil
		}
	}
	var out kernel.Formula
	for x := 0; x < len(args); x = x + 1 {
		for y := x + 1; y < len(args); y = y + 1 {
			d := kernel.NewAtom(kernel.NewEquality(false, args[x], args[y]))
			if out == nil {
				out = d
				continue
			}
			out = kernel.NewJunction(kernel.ConnAnd, out, d)
		}
	}
	return out, nil
}

// theoryApp builds $select and $store. A boolean-valued $select is an atom;
// $store never is.
func (p *parser) theoryApp(app *application, args []built, formula bool) exc.Exception {
	terms := p.terms(args)
	arity := 2
	if app.name == "$store" {
		arity = 3
		if formula {
			return p.errorf(app.tok, exc.CodeUnsupportedConstruct, "$store cannot be used as a formula")
		}
	}
	if len(terms) != arity {
		return p.errorf(app.tok, exc.CodeArityMismatch, "%s expects %d arguments but was given %d", app.name, arity, len(terms))
	}
	arr := terms[0].Sort()
	if p.sorts.Kind(arr) != kernel.SortKindArray {
		return p.errorf(app.tok, exc.CodeSortMismatch, "%s expects an array as its first argument but found sort %s", app.name, p.sorts.Name(arr))
	}
	if index := p.sorts.ArrayIndex(arr); terms[1].Sort() != index {
		return p.errorf(app.tok, exc.CodeSortMismatch, "%s: index of sort %s used with array %s", app.name, p.sorts.Name(terms[1].Sort()), p.sorts.Name(arr))
	}
	value := p.sorts.ArrayValue(arr)
	if app.name == "$store" {
		if terms[2].Sort() != value {
			return p.errorf(app.tok, exc.CodeSortMismatch, "$store: value of sort %s stored in array %s", p.sorts.Name(terms[2].Sort()), p.sorts.Name(arr))
		}
		sym := p.sig.Interpreted(kernel.Interpretation{Op: kernel.OpArrayStore, Sort: arr})
		p.pushTerm(kernel.NewApp(sym, terms...), app.tok)
		return nil
	}
	if value == kernel.SortBool {
		sym := p.sig.Interpreted(kernel.Interpretation{Op: kernel.OpArrayBoolSelect, Sort: arr})
		p.pushFormula(kernel.NewAtom(kernel.NewLiteral(sym, true, terms...)), app.tok)
		return nil
	}
	sym := p.sig.Interpreted(kernel.Interpretation{Op: kernel.OpArraySelect, Sort: arr})
	p.pushTerm(kernel.NewApp(sym, terms...), app.tok)
	return nil
}

// overflowConstant stands in for a numeral that does not fit. The constant
// is named by the literal text and keeps the literal's sort.
func (p *parser) overflowConstant(tok *Token, sort kernel.SortID) (*kernel.Symbol, exc.Exception) {
	sym, added := p.sig.AddFunction(tok.Value, 0)
	if added {
		sym.Type = kernel.ConstantType(sort)
		sym.Overflow = true
		p.overflow[tok.Value] = true
		p.result.Overflow = append(p.result.Overflow, tok.Value)
		return sym, nil
	}
	if !sym.Overflow {
		return nil, p.errorf(tok, exc.CodeNameCollision, "numeral %s is out of range and its text is already used as a symbol", tok.Value)
	}
	if sym.Type.Result != sort {
		return nil, p.errorf(tok, exc.CodeSortMismatch, "numeral %s is used with sorts %s and %s",
			tok.Value, p.sorts.Name(sym.Type.Result), p.sorts.Name(sort))
	}
	return sym, nil
}

func (p *parser) checkCollision(tok *Token, name string) exc.Exception {
	if p.overflow[name] {
		return p.errorf(tok, exc.CodeNameCollision, "symbol %s has the same name as an out of range numeral", name)
	}
	return nil
}
