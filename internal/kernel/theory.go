// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"fmt"
)

type Operation uint8

const (
	OpNone Operation = iota
	OpUminus
	OpSum
	OpDifference
	OpProduct
	OpQuotient
	OpQuotientE
	OpQuotientT
	OpQuotientF
	OpRemainderE
	OpRemainderT
	OpRemainderF
	OpFloor
	OpCeiling
	OpTruncate
	OpRound
	OpToInt
	OpToRat
	OpToReal
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpIsInt
	OpIsRat
	OpAbs
	OpSuccessor
	OpDivides
	OpArraySelect
	OpArrayBoolSelect
	OpArrayStore
)

type resultRule uint8

const (
	resultDomain resultRule = iota
	resultBool
	resultInt
	resultRat
	resultReal
)

type operationInfo struct {
	name   string
	arity  int
	result resultRule
	// intOnly operations are defined on $int alone.
	intOnly bool
	// noInt operations are undefined on $int.
	noInt bool
}

var operations = map[Operation]operationInfo{
	OpUminus:     {name: "$uminus", arity: 1},
	OpSum:        {name: "$sum", arity: 2},
	OpDifference: {name: "$difference", arity: 2},
	OpProduct:    {name: "$product", arity: 2},
	OpQuotient:   {name: "$quotient", arity: 2, noInt: true},
	OpQuotientE:  {name: "$quotient_e", arity: 2},
	OpQuotientT:  {name: "$quotient_t", arity: 2},
	OpQuotientF:  {name: "$quotient_f", arity: 2},
	OpRemainderE: {name: "$remainder_e", arity: 2},
	OpRemainderT: {name: "$remainder_t", arity: 2},
	OpRemainderF: {name: "$remainder_f", arity: 2},
	OpFloor:      {name: "$floor", arity: 1},
	OpCeiling:    {name: "$ceiling", arity: 1},
	OpTruncate:   {name: "$truncate", arity: 1},
	OpRound:      {name: "$round", arity: 1},
	OpToInt:      {name: "$to_int", arity: 1, result: resultInt},
	OpToRat:      {name: "$to_rat", arity: 1, result: resultRat},
	OpToReal:     {name: "$to_real", arity: 1, result: resultReal},
	OpLess:       {name: "$less", arity: 2, result: resultBool},
	OpLessEq:     {name: "$lesseq", arity: 2, result: resultBool},
	OpGreater:    {name: "$greater", arity: 2, result: resultBool},
	OpGreaterEq:  {name: "$greatereq", arity: 2, result: resultBool},
	OpIsInt:      {name: "$is_int", arity: 1, result: resultBool},
	OpIsRat:      {name: "$is_rat", arity: 1, result: resultBool},
	OpAbs:        {name: "$abs", arity: 1, intOnly: true},
	OpSuccessor:  {name: "$successor", arity: 1, intOnly: true},
	OpDivides:    {name: "$divides", arity: 2, result: resultBool, intOnly: true},

	OpArraySelect:     {name: "$select", arity: 2},
	OpArrayBoolSelect: {name: "$select", arity: 2, result: resultBool},
	OpArrayStore:      {name: "$store", arity: 3},
}

var operationsByName = func() map[string]Operation {
	out := make(map[string]Operation, len(operations))
	for op, info := range operations {
		if op >= OpArraySelect {
			continue
		}
		out[info.name] = op
	}
	return out
}()

// LookupArithmetic finds an overloaded arithmetic operation by its reserved
// name. $divide and $modulo are accepted as aliases; use ResolveArithmetic to
// pick the operation they stand for on a given sort.
func LookupArithmetic(name string) (Operation, bool) {
	switch name {
	case "$divide":
		return OpQuotient, true
	case "$modulo":
		return OpRemainderE, true
	}
	op, ok := operationsByName[name]
	return op, ok
}

// ResolveArithmetic specialises an overloaded name to the sort of its first
// argument.
func ResolveArithmetic(name string, sort SortID) (Interpretation, error) {
	op, ok := LookupArithmetic(name)
	if !ok {
		return Interpretation{}, fmt.Errorf("%s is not an arithmetic operation", name)
	}
	switch name {
	case "$divide":
		if sort == SortInt {
			op = OpQuotientE
		}
	case "$modulo":
		if sort != SortInt {
			return Interpretation{}, fmt.Errorf("$modulo can only be used with integer type")
		}
	}
	if !IsNumeric(sort) {
		return Interpretation{}, fmt.Errorf("%s can only be used with arguments of a numeric sort", name)
	}
	if !op.AllowsSort(sort) {
		info := operations[op]
		if info.noInt {
			return Interpretation{}, fmt.Errorf("%s cannot be used with integer type", name)
		}
		return Interpretation{}, fmt.Errorf("%s can only be used with integer type", name)
	}
	return Interpretation{Op: op, Sort: sort}, nil
}

func (op Operation) Name() string {
	return operations[op].name
}

func (op Operation) Arity() int {
	return operations[op].arity
}

func (op Operation) Predicate() bool {
	return operations[op].result == resultBool
}

// AllowsSort reports whether the arithmetic operation is defined on the
// given numeric sort.
func (op Operation) AllowsSort(sort SortID) bool {
	info := operations[op]
	if !IsNumeric(sort) {
		return false
	}
	if info.intOnly && sort != SortInt {
		return false
	}
	if info.noInt && sort == SortInt {
		return false
	}
	return true
}

// Interpretation names one theory symbol: an operation specialised to the
// sort it operates on. For arithmetic that is the numeric argument sort, for
// arrays it is the array sort.
type Interpretation struct {
	Op   Operation
	Sort SortID
}

func (i Interpretation) Predicate() bool {
	return i.Op.Predicate()
}

// Type computes the operator type of the interpreted symbol.
func (i Interpretation) Type(sorts *Sorts) *OperatorType {
	switch i.Op {
	case OpArraySelect, OpArrayBoolSelect:
		return &OperatorType{
			Args:   []SortID{i.Sort, sorts.ArrayIndex(i.Sort)},
			Result: sorts.ArrayValue(i.Sort),
		}
	case OpArrayStore:
		return &OperatorType{
			Args:   []SortID{i.Sort, sorts.ArrayIndex(i.Sort), sorts.ArrayValue(i.Sort)},
			Result: i.Sort,
		}
	}
	info := operations[i.Op]
	args := make([]SortID, info.arity)
	for x := range args {
		args[x] = i.Sort
	}
	t := &OperatorType{Args: args}
	switch info.result {
	case resultBool:
		t.Result = SortBool
	case resultInt:
		t.Result = SortInt
	case resultRat:
		t.Result = SortRat
	case resultReal:
		t.Result = SortReal
	default:
		t.Result = i.Sort
	}
	return t
}
