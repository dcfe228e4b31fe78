// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"fmt"
	"strconv"
)

type Color uint8

const (
	ColorTransparent Color = iota
	ColorLeft
	ColorRight
)

func (c Color) String() string {
	switch c {
	case ColorLeft:
		return "left"
	case ColorRight:
		return "right"
	default:
		return "transparent"
	}
}

// Symbol is a function or predicate of the signature. Symbols are always
// handled by pointer so that later declarations and directives update the one
// shared record.
type Symbol struct {
	Name      string
	Predicate bool
	Type      *OperatorType
	// Interpreted symbols carry the theory operation they stand for.
	Interpreted    bool
	Interpretation Interpretation
	// Number is set for interpreted numeric constants.
	Number *Number
	// StringConstant marks distinct string constants.
	StringConstant bool
	// Overflow marks constants that replace an out of range numeral.
	Overflow bool
	// Fresh symbols are introduced by the parser for let-bindings and claim
	// labels and are never visible by name at the top level.
	Fresh bool
	Label bool
	Color Color
	Skip  bool
}

func (s *Symbol) Arity() int {
	return s.Type.Arity()
}

func (s *Symbol) String() string {
	if s.StringConstant {
		return strconv.Quote(s.Name)
	}
	return s.Name
}

type symbolKey struct {
	name  string
	arity int
}

type numberKey struct {
	number Number
	sort   SortID
}

// Signature is the symbol registry for one problem. It owns the sort
// registry and every symbol the parser creates.
type Signature struct {
	sorts       *Sorts
	functions   []*Symbol
	predicates  []*Symbol
	funIndex    map[symbolKey]*Symbol
	predIndex   map[symbolKey]*Symbol
	interpreted map[Interpretation]*Symbol
	numbers     map[numberKey]*Symbol
	strings     map[string]*Symbol
	distinct    [][]*Symbol
	fresh       int
}

func NewSignature() *Signature {
	return &Signature{
		sorts:       NewSorts(),
		funIndex:    make(map[symbolKey]*Symbol),
		predIndex:   make(map[symbolKey]*Symbol),
		interpreted: make(map[Interpretation]*Symbol),
		numbers:     make(map[numberKey]*Symbol),
		strings:     make(map[string]*Symbol),
	}
}

func (s *Signature) Sorts() *Sorts {
	return s.sorts
}

func (s *Signature) Functions() []*Symbol {
	return s.functions
}

func (s *Signature) Predicates() []*Symbol {
	return s.predicates
}

func (s *Signature) Function(name string, arity int) (*Symbol, bool) {
	sym, ok := s.funIndex[symbolKey{name: name, arity: arity}]
	return sym, ok
}

func (s *Signature) Predicate(name string, arity int) (*Symbol, bool) {
	sym, ok := s.predIndex[symbolKey{name: name, arity: arity}]
	return sym, ok
}

// AddFunction returns the function with the given name and arity, creating it
// with the default type if it does not exist yet.
func (s *Signature) AddFunction(name string, arity int) (*Symbol, bool) {
	key := symbolKey{name: name, arity: arity}
	if sym, ok := s.funIndex[key]; ok {
		return sym, false
	}
	sym := &Symbol{Name: name, Type: DefaultType(arity, false)}
	s.funIndex[key] = sym
	s.functions = append(s.functions, sym)
	return sym, true
}

// AddPredicate is the predicate counterpart of AddFunction.
func (s *Signature) AddPredicate(name string, arity int) (*Symbol, bool) {
	key := symbolKey{name: name, arity: arity}
	if sym, ok := s.predIndex[key]; ok {
		return sym, false
	}
	sym := &Symbol{Name: name, Predicate: true, Type: DefaultType(arity, true)}
	s.predIndex[key] = sym
	s.predicates = append(s.predicates, sym)
	return sym, true
}

// AddFresh creates an anonymous symbol of the given type whose printed name
// starts with prefix. Fresh symbols are not entered into the name index.
func (s *Signature) AddFresh(prefix string, t *OperatorType) *Symbol {
	s.fresh = s.fresh + 1
	sym := &Symbol{
		Name:      fmt.Sprintf("%s_%d", prefix, s.fresh),
		Predicate: t.Predicate(),
		Type:      t,
		Fresh:     true,
	}
	if sym.Predicate {
		s.predicates = append(s.predicates, sym)
	} else {
		s.functions = append(s.functions, sym)
	}
	return sym
}

// Interpreted returns the symbol for a theory operation, creating it on first
// use.
func (s *Signature) Interpreted(itp Interpretation) *Symbol {
	if sym, ok := s.interpreted[itp]; ok {
		return sym
	}
	sym := &Symbol{
		Name:           itp.Op.Name(),
		Predicate:      itp.Predicate(),
		Type:           itp.Type(s.sorts),
		Interpreted:    true,
		Interpretation: itp,
	}
	s.interpreted[itp] = sym
	if sym.Predicate {
		s.predicates = append(s.predicates, sym)
	} else {
		s.functions = append(s.functions, sym)
	}
	return sym
}

// NumberConstant returns the constant for a numeric value. The sort is
// separate from the value because untyped dialects read numerals as
// individuals.
func (s *Signature) NumberConstant(n Number, sort SortID) *Symbol {
	key := numberKey{number: n, sort: sort}
	if sym, ok := s.numbers[key]; ok {
		return sym
	}
	num := n
	sym := &Symbol{Name: n.String(), Type: ConstantType(sort), Number: &num}
	s.numbers[key] = sym
	s.functions = append(s.functions, sym)
	return sym
}

func (s *Signature) StringConstant(value string) *Symbol {
	if sym, ok := s.strings[value]; ok {
		return sym
	}
	sym := &Symbol{Name: value, Type: ConstantType(SortDefault), StringConstant: true}
	s.strings[value] = sym
	s.functions = append(s.functions, sym)
	return sym
}

// AddDistinctGroup records that all the given constants denote pairwise
// distinct elements.
func (s *Signature) AddDistinctGroup(constants []*Symbol) {
	group := make([]*Symbol, len(constants))
	copy(group, constants)
	s.distinct = append(s.distinct, group)
}

func (s *Signature) DistinctGroups() [][]*Symbol {
	return s.distinct
}
