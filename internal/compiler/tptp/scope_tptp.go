// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"fmt"

	"gopkg.microglot.org/tptp.go/internal/kernel"
)

type letKey struct {
	name  string
	arity int
}

// letFrame holds the symbols one $let makes visible in its body.
type letFrame struct {
	symbols map[letKey]*kernel.Symbol
}

func newLetFrame() *letFrame {
	return &letFrame{symbols: make(map[letKey]*kernel.Symbol)}
}

// scope tracks variable bindings and let-bound symbols. Variable names are
// interned so that every occurrence of a name shares one ID; the sort of a
// name is the innermost binding. Bindings are strictly nested: frames are
// released in the reverse order they were opened.
type scope struct {
	ids    map[string]int
	sorts  map[string][]kernel.SortID
	frames [][]string
	lets   []*letFrame
}

func newScope() *scope {
	return &scope{
		ids:   make(map[string]int),
		sorts: make(map[string][]kernel.SortID),
	}
}

func (s *scope) varID(name string) int {
	id, ok := s.ids[name]
	if !ok {
		id = len(s.ids)
		s.ids[name] = id
	}
	return id
}

// variable returns an occurrence of name with the sort of its innermost
// binding. Unbound variables have the default sort.
func (s *scope) variable(name string) *kernel.Var {
	sort := kernel.SortDefault
	if stack := s.sorts[name]; len(stack) > 0 {
		sort = stack[len(stack)-1]
	}
	return kernel.NewVar(s.varID(name), name, sort)
}

func (s *scope) bound(name string) bool {
	return len(s.sorts[name]) > 0
}

func (s *scope) pushFrame() {
	s.frames = append(s.frames, nil)
}

// bindVariable binds name in the innermost frame.
func (s *scope) bindVariable(name string, sort kernel.SortID) *kernel.Var {
	if len(s.frames) == 0 {
		panic("tptp: variable bound outside of any frame")
	}
	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], name)
	s.sorts[name] = append(s.sorts[name], sort)
	return kernel.NewVar(s.varID(name), name, sort)
}

// unbindVariable releases the newest binding of the innermost frame, which
// must be name.
func (s *scope) unbindVariable(name string) {
	if len(s.frames) == 0 {
		panic(fmt.Sprintf("tptp: unbinding %s outside of any frame", name))
	}
	top := len(s.frames) - 1
	frame := s.frames[top]
	if len(frame) == 0 || frame[len(frame)-1] != name {
		panic(fmt.Sprintf("tptp: unbinding %s out of order", name))
	}
	s.frames[top] = frame[:len(frame)-1]
	stack := s.sorts[name]
	if len(stack) == 1 {
		delete(s.sorts, name)
		return
	}
	s.sorts[name] = stack[:len(stack)-1]
}

// popFrame releases every binding of the innermost frame, newest first.
func (s *scope) popFrame() {
	if len(s.frames) == 0 {
		panic("tptp: popping an empty scope")
	}
	top := len(s.frames) - 1
	for len(s.frames[top]) > 0 {
		frame := s.frames[top]
		s.unbindVariable(frame[len(frame)-1])
	}
	s.frames = s.frames[:top]
}

// defineLetSymbol adds a symbol to a pending let frame. A name and arity may
// be defined once per frame.
func (s *scope) defineLetSymbol(f *letFrame, name string, arity int, sym *kernel.Symbol) bool {
	key := letKey{name: name, arity: arity}
	if _, ok := f.symbols[key]; ok {
		return false
	}
	f.symbols[key] = sym
	return true
}

// lookupLetSymbol searches the visible let frames, innermost first.
func (s *scope) lookupLetSymbol(name string, arity int) (*kernel.Symbol, bool) {
	key := letKey{name: name, arity: arity}
	for x := len(s.lets) - 1; x >= 0; x = x - 1 {
		if sym, ok := s.lets[x].symbols[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

func (s *scope) pushLetFrame(f *letFrame) {
	s.lets = append(s.lets, f)
}

func (s *scope) popLetFrame() {
	if len(s.lets) == 0 {
		panic("tptp: popping an empty let scope")
	}
	s.lets = s.lets[:len(s.lets)-1]
}

// depth is the number of open variable and let frames. It is zero between
// units.
func (s *scope) depth() int {
	return len(s.frames) + len(s.lets)
}
