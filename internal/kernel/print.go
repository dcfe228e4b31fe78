// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"strings"
)

func joinTerms(ts []Term) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ",")
}

func joinVars(vs []*Var) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Name)
	}
	return strings.Join(parts, ",")
}

func (v *Var) String() string {
	return v.Name
}

func (a *App) String() string {
	if len(a.Args) == 0 {
		return a.Symbol.String()
	}
	return a.Symbol.String() + "(" + joinTerms(a.Args) + ")"
}

func (t *FormulaTerm) String() string {
	return t.Formula.String()
}

func (t *Ite) String() string {
	return "$ite(" + t.Cond.String() + ", " + t.Then.String() + ", " + t.Else.String() + ")"
}

func (t *Let) String() string {
	head := t.Symbol.Name
	if len(t.Vars) > 0 {
		head = head + "(" + joinVars(t.Vars) + ")"
	}
	return "$let(" + head + " := " + t.Binding.String() + ", " + t.Body.String() + ")"
}

func (t *TupleLet) String() string {
	names := make([]string, 0, len(t.Symbols))
	for _, s := range t.Symbols {
		names = append(names, s.Name)
	}
	return "$let([" + strings.Join(names, ",") + "] := " + t.Binding.String() + ", " + t.Body.String() + ")"
}

func (t *Tuple) String() string {
	return "[" + joinTerms(t.Elems) + "]"
}

func (c *Constant) String() string {
	if c.Value {
		return "$true"
	}
	return "$false"
}

func (l *Literal) String() string {
	if l.Equality {
		op := " = "
		if !l.Positive {
			op = " != "
		}
		return l.Args[0].String() + op + l.Args[1].String()
	}
	atom := l.Predicate.String()
	if len(l.Args) > 0 {
		atom = atom + "(" + joinTerms(l.Args) + ")"
	}
	if !l.Positive {
		return "~" + atom
	}
	return atom
}

func (a *Atom) String() string {
	return a.Literal.String()
}

func (n *Negation) String() string {
	return "~" + n.Arg.String()
}

func (j *Junction) String() string {
	parts := make([]string, 0, len(j.Args))
	for _, a := range j.Args {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, " "+j.Conn.String()+" ") + ")"
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Conn.String() + " " + b.Right.String() + ")"
}

func (q *Quantified) String() string {
	return "(" + q.Conn.String() + " [" + joinVars(q.Vars) + "] : " + q.Body.String() + ")"
}

func (b *BoolTerm) String() string {
	return b.Term.String()
}
