// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

// Term is any first-order term. Every term knows its sort.
type Term interface {
	Sort() SortID
	String() string
	isTerm()
}

// Var is a variable occurrence. Variables with the same name share an ID for
// the lifetime of a parse; the sort comes from the binding in scope.
type Var struct {
	ID   int
	Name string
	sort SortID
}

func NewVar(id int, name string, sort SortID) *Var {
	return &Var{ID: id, Name: name, sort: sort}
}

func (v *Var) Sort() SortID { return v.sort }
func (v *Var) isTerm()      {}

// App applies a function symbol to arguments. Constants have no arguments.
type App struct {
	Symbol *Symbol
	Args   []Term
}

func NewApp(sym *Symbol, args ...Term) *App {
	return &App{Symbol: sym, Args: args}
}

func (a *App) Sort() SortID { return a.Symbol.Type.Result }
func (a *App) isTerm()      {}

// FormulaTerm embeds a formula where a term is expected. Its sort is $o.
type FormulaTerm struct {
	Formula Formula
}

// NewFormulaTerm wraps f, unwrapping a boolean term first so that the two
// embeddings never stack.
func NewFormulaTerm(f Formula) Term {
	if bt, ok := f.(*BoolTerm); ok {
		return bt.Term
	}
	return &FormulaTerm{Formula: f}
}

func (t *FormulaTerm) Sort() SortID { return SortBool }
func (t *FormulaTerm) isTerm()      {}

// Ite is the if-then-else term. Both branches share a sort.
type Ite struct {
	Cond Formula
	Then Term
	Else Term
}

func (t *Ite) Sort() SortID { return t.Then.Sort() }
func (t *Ite) isTerm()      {}

// Let binds Symbol, applied to Vars, to Binding inside Body.
type Let struct {
	Symbol  *Symbol
	Vars    []*Var
	Binding Term
	Body    Term
}

func (t *Let) Sort() SortID { return t.Body.Sort() }
func (t *Let) isTerm()      {}

// TupleLet binds each constant of Symbols to the matching component of the
// tuple valued Binding inside Body.
type TupleLet struct {
	Symbols []*Symbol
	Binding Term
	Body    Term
}

func (t *TupleLet) Sort() SortID { return t.Body.Sort() }
func (t *TupleLet) isTerm()      {}

type Tuple struct {
	Elems []Term
	sort  SortID
}

func NewTuple(sorts *Sorts, elems []Term) *Tuple {
	elemSorts := make([]SortID, 0, len(elems))
	for _, e := range elems {
		elemSorts = append(elemSorts, e.Sort())
	}
	return &Tuple{Elems: elems, sort: sorts.Tuple(elemSorts)}
}

func (t *Tuple) Sort() SortID { return t.sort }
func (t *Tuple) isTerm()      {}
