// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package kernel holds the in-memory problem representation that the parser
// elaborates into: sorts, the symbol signature, theory interpretations, terms,
// formulas, clauses and units. A Signature is the registry handle for one
// problem; nothing in this package is global.
package kernel

import (
	"fmt"
	"strings"
)

type SortID uint32

const (
	SortDefault SortID = iota // $i
	SortBool                  // $o
	SortInt                   // $int
	SortRat                   // $rat
	SortReal                  // $real
	firstUserSort
)

type SortKind uint8

const (
	SortKindAtomic SortKind = iota
	SortKindArray
	SortKindTuple
)

type sortInfo struct {
	name  string
	kind  SortKind
	index SortID
	value SortID
	elems []SortID
}

// Sorts is the sort registry. Array and tuple sorts are interned by their
// structure so that equal structures always share one SortID.
type Sorts struct {
	infos  []sortInfo
	byName map[string]SortID
}

func NewSorts() *Sorts {
	s := &Sorts{byName: make(map[string]SortID)}
	for _, name := range []string{"$i", "$o", "$int", "$rat", "$real"} {
		s.add(sortInfo{name: name})
	}
	return s
}

func (s *Sorts) add(info sortInfo) SortID {
	id := SortID(len(s.infos))
	s.infos = append(s.infos, info)
	s.byName[info.name] = id
	return id
}

// AddSort declares an atomic sort. Declaring an existing sort again is not an
// error; added reports whether the sort is new.
func (s *Sorts) AddSort(name string) (id SortID, added bool) {
	if id, ok := s.byName[name]; ok {
		return id, false
	}
	return s.add(sortInfo{name: name}), true
}

func (s *Sorts) Find(name string) (SortID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Array returns the sort of arrays from index to value.
func (s *Sorts) Array(index SortID, value SortID) SortID {
	name := fmt.Sprintf("$array(%s,%s)", s.Name(index), s.Name(value))
	if id, ok := s.byName[name]; ok {
		return id
	}
	return s.add(sortInfo{name: name, kind: SortKindArray, index: index, value: value})
}

// Tuple returns the sort of tuples with the given element sorts.
func (s *Sorts) Tuple(elems []SortID) SortID {
	names := make([]string, 0, len(elems))
	for _, e := range elems {
		names = append(names, s.Name(e))
	}
	name := "[" + strings.Join(names, ",") + "]"
	if id, ok := s.byName[name]; ok {
		return id
	}
	cp := make([]SortID, len(elems))
	copy(cp, elems)
	return s.add(sortInfo{name: name, kind: SortKindTuple, elems: cp})
}

func (s *Sorts) Kind(id SortID) SortKind {
	return s.info(id).kind
}

func (s *Sorts) ArrayIndex(id SortID) SortID {
	return s.info(id).index
}

func (s *Sorts) ArrayValue(id SortID) SortID {
	return s.info(id).value
}

func (s *Sorts) TupleElements(id SortID) []SortID {
	return s.info(id).elems
}

func (s *Sorts) Name(id SortID) string {
	return s.info(id).name
}

func (s *Sorts) Count() int {
	return len(s.infos)
}

func (s *Sorts) info(id SortID) sortInfo {
	if int(id) >= len(s.infos) {
		panic(fmt.Sprintf("kernel: unknown sort %d", id))
	}
	return s.infos[id]
}

// IsNumeric reports whether the sort is one of the arithmetic sorts.
func IsNumeric(id SortID) bool {
	return id == SortInt || id == SortRat || id == SortReal
}

// OperatorType is the type of a function or predicate symbol. Predicates have
// the result sort SortBool.
type OperatorType struct {
	Args   []SortID
	Result SortID
}

// DefaultType is the type given to symbols used before any declaration: all
// arguments of the default sort.
func DefaultType(arity int, predicate bool) *OperatorType {
	t := &OperatorType{Args: make([]SortID, arity), Result: SortDefault}
	if predicate {
		t.Result = SortBool
	}
	return t
}

func ConstantType(sort SortID) *OperatorType {
	return &OperatorType{Result: sort}
}

func (t *OperatorType) Arity() int {
	return len(t.Args)
}

func (t *OperatorType) Predicate() bool {
	return t.Result == SortBool
}

func (t *OperatorType) Equal(o *OperatorType) bool {
	if t.Result != o.Result || len(t.Args) != len(o.Args) {
		return false
	}
	for x := range t.Args {
		if t.Args[x] != o.Args[x] {
			return false
		}
	}
	return true
}

// TypeString renders an operator type in TFF syntax.
func (s *Sorts) TypeString(t *OperatorType) string {
	if len(t.Args) == 0 {
		return s.Name(t.Result)
	}
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, s.Name(a))
	}
	if len(args) == 1 {
		return args[0] + " > " + s.Name(t.Result)
	}
	return "(" + strings.Join(args, " * ") + ") > " + s.Name(t.Result)
}
