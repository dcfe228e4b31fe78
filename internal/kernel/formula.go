// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

type Connective uint8

const (
	ConnAnd Connective = iota
	ConnOr
	ConnImp
	ConnIff
	ConnXor
	ConnForall
	ConnExists
)

func (c Connective) String() string {
	switch c {
	case ConnAnd:
		return "&"
	case ConnOr:
		return "|"
	case ConnImp:
		return "=>"
	case ConnIff:
		return "<=>"
	case ConnXor:
		return "<~>"
	case ConnForall:
		return "!"
	case ConnExists:
		return "?"
	default:
		return "?conn"
	}
}

type Formula interface {
	String() string
	isFormula()
}

type Constant struct {
	Value bool
}

var (
	True  = &Constant{Value: true}
	False = &Constant{Value: false}
)

func (*Constant) isFormula() {}

// Literal is an atom with a polarity. Equalities record the sort of their
// two sides.
type Literal struct {
	Predicate *Symbol
	Positive  bool
	Args      []Term
	Equality  bool
	EqSort    SortID
}

func NewLiteral(pred *Symbol, positive bool, args ...Term) *Literal {
	return &Literal{Predicate: pred, Positive: positive, Args: args}
}

func NewEquality(positive bool, lhs Term, rhs Term) *Literal {
	return &Literal{Positive: positive, Args: []Term{lhs, rhs}, Equality: true, EqSort: lhs.Sort()}
}

// Complement returns a copy with the opposite polarity.
func (l *Literal) Complement() *Literal {
	out := *l
	out.Positive = !l.Positive
	return &out
}

type Atom struct {
	Literal *Literal
}

func NewAtom(l *Literal) *Atom {
	return &Atom{Literal: l}
}

func (*Atom) isFormula() {}

type Negation struct {
	Arg Formula
}

func NewNegation(f Formula) *Negation {
	return &Negation{Arg: f}
}

func (*Negation) isFormula() {}

// Junction is a conjunction or disjunction of two or more formulas.
type Junction struct {
	Conn Connective
	Args []Formula
}

// NewJunction joins left and right, flattening nested junctions of the same
// connective.
func NewJunction(conn Connective, left Formula, right Formula) *Junction {
	out := &Junction{Conn: conn}
	for _, f := range []Formula{left, right} {
		if j, ok := f.(*Junction); ok && j.Conn == conn {
			out.Args = append(out.Args, j.Args...)
			continue
		}
		out.Args = append(out.Args, f)
	}
	return out
}

func (*Junction) isFormula() {}

// Binary holds the non-associative connectives: implication, equivalence and
// exclusive or.
type Binary struct {
	Conn  Connective
	Left  Formula
	Right Formula
}

func (*Binary) isFormula() {}

type Quantified struct {
	Conn Connective
	Vars []*Var
	Body Formula
}

func (*Quantified) isFormula() {}

// BoolTerm uses a term of sort $o as a formula.
type BoolTerm struct {
	Term Term
}

// NewBoolTerm wraps t, unwrapping an embedded formula first.
func NewBoolTerm(t Term) Formula {
	if ft, ok := t.(*FormulaTerm); ok {
		return ft.Formula
	}
	return &BoolTerm{Term: t}
}

func (*BoolTerm) isFormula() {}

// UniversalClosure quantifies all free variables of f universally.
func UniversalClosure(f Formula) Formula {
	vars := FreeVariables(f)
	if len(vars) == 0 {
		return f
	}
	return &Quantified{Conn: ConnForall, Vars: vars, Body: f}
}

type freeVarItem struct {
	formula Formula
	term    Term
	// pop marks the end of a binder so that its variables are released.
	pop []*Var
}

// FreeVariables lists the free variables of f in order of first occurrence.
func FreeVariables(f Formula) []*Var {
	bound := make(map[int]int)
	seen := make(map[int]bool)
	var out []*Var
	bind := func(vs []*Var) {
		for _, v := range vs {
			bound[v.ID] = bound[v.ID] + 1
		}
	}
	stack := []freeVarItem{{formula: f}}
	push := func(items ...freeVarItem) {
		for x := len(items) - 1; x >= 0; x = x - 1 {
			stack = append(stack, items[x])
		}
	}
	terms := func(ts []Term) []freeVarItem {
		items := make([]freeVarItem, 0, len(ts))
		for _, t := range ts {
			items = append(items, freeVarItem{term: t})
		}
		return items
	}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.pop != nil {
			for _, v := range item.pop {
				bound[v.ID] = bound[v.ID] - 1
			}
			continue
		}
		switch g := item.formula.(type) {
		case nil:
		case *Atom:
			push(terms(g.Literal.Args)...)
		case *Negation:
			push(freeVarItem{formula: g.Arg})
		case *Junction:
			items := make([]freeVarItem, 0, len(g.Args))
			for _, a := range g.Args {
				items = append(items, freeVarItem{formula: a})
			}
			push(items...)
		case *Binary:
			push(freeVarItem{formula: g.Left}, freeVarItem{formula: g.Right})
		case *Quantified:
			bind(g.Vars)
			push(freeVarItem{formula: g.Body}, freeVarItem{pop: g.Vars})
		case *BoolTerm:
			push(freeVarItem{term: g.Term})
		}
		switch t := item.term.(type) {
		case nil:
		case *Var:
			if bound[t.ID] == 0 && !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		case *App:
			push(terms(t.Args)...)
		case *FormulaTerm:
			push(freeVarItem{formula: t.Formula})
		case *Ite:
			push(freeVarItem{formula: t.Cond}, freeVarItem{term: t.Then}, freeVarItem{term: t.Else})
		case *Let:
			bind(t.Vars)
			push(freeVarItem{term: t.Binding}, freeVarItem{pop: t.Vars}, freeVarItem{term: t.Body})
		case *TupleLet:
			push(freeVarItem{term: t.Binding}, freeVarItem{term: t.Body})
		case *Tuple:
			push(terms(t.Elems)...)
		}
	}
	return out
}
