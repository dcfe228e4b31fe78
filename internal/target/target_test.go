// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		target   string
		expected string
	}{
		{name: "relative", target: "Problems/SET001+1.p", expected: "/Problems/SET001+1.p"},
		{name: "absolute", target: "/Problems//SET001+1.p", expected: "/Problems/SET001+1.p"},
		{name: "file uri", target: "file:///Problems/SET001+1.p", expected: "/Problems/SET001+1.p"},
		{name: "other scheme", target: "https://tptp.org/Problems/SET001+1.p", expected: "https://tptp.org/Problems/SET001+1.p"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, Normalize(testCase.target))
		})
	}
}

func TestIncludeCandidates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		dir      string
		include  string
		expected []string
	}{
		{name: "relative", dir: "/Problems/SET", include: "Axioms/SET001-0.ax", expected: []string{"/Problems/SET/Axioms/SET001-0.ax", "/Axioms/SET001-0.ax"}},
		{name: "at root", dir: "/", include: "f.p", expected: []string{"/f.p"}},
		{name: "absolute", dir: "/x", include: "/abs/f.p", expected: []string{"/abs/f.p"}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, IncludeCandidates(testCase.dir, testCase.include))
		})
	}
}
