// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/kernel"
)

func TestScopeVariables(t *testing.T) {
	t.Parallel()

	s := newScope()
	s.pushFrame()
	x := s.bindVariable("X", kernel.SortInt)
	s.pushFrame()
	s.bindVariable("X", kernel.SortReal)
	s.bindVariable("Y", kernel.SortBool)
	require.Equal(t, kernel.SortReal, s.variable("X").Sort())
	require.Equal(t, x.ID, s.variable("X").ID)

	s.unbindVariable("Y")
	require.False(t, s.bound("Y"))
	s.popFrame()
	require.Equal(t, kernel.SortInt, s.variable("X").Sort())
	s.popFrame()
	require.False(t, s.bound("X"))
	require.Zero(t, s.depth())
	require.Equal(t, kernel.SortDefault, s.variable("X").Sort())
}

func TestScopeUnbindOrder(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		frames   [][]string
		variable string
	}{
		{name: "not the newest binding", frames: [][]string{{"X", "Y"}}, variable: "X"},
		{name: "bound in an outer frame", frames: [][]string{{"X"}, {}}, variable: "X"},
		{name: "never bound", frames: [][]string{{}}, variable: "Z"},
		{name: "no frame", variable: "X"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			s := newScope()
			for _, frame := range testCase.frames {
				s.pushFrame()
				for _, name := range frame {
					s.bindVariable(name, kernel.SortInt)
				}
			}
			require.Panics(t, func() { s.unbindVariable(testCase.variable) })
		})
	}
}

func TestScopeLets(t *testing.T) {
	t.Parallel()

	s := newScope()
	f := newLetFrame()
	sym := &kernel.Symbol{Name: "c"}
	require.True(t, s.defineLetSymbol(f, "c", 0, sym))
	require.False(t, s.defineLetSymbol(f, "c", 0, sym))
	_, ok := s.lookupLetSymbol("c", 0)
	require.False(t, ok)
	s.pushLetFrame(f)
	got, ok := s.lookupLetSymbol("c", 0)
	require.True(t, ok)
	require.Same(t, sym, got)
	_, ok = s.lookupLetSymbol("c", 1)
	require.False(t, ok)
	s.popLetFrame()
	require.Zero(t, s.depth())
	require.Panics(t, func() { s.popLetFrame() })
}
