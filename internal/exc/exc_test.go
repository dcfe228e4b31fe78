// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"errors"
	"io"
	"testing"

	pcreporter "github.com/bufbuild/protocompile/reporter"
	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/source"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		code     string
		expected Kind
	}{
		{code: CodeUnknownFatal, expected: KindInternal},
		{code: CodeFileNotFound, expected: KindIO},
		{code: CodeUnexpectedToken, expected: KindSyntax},
		{code: CodeUnterminatedLiteral, expected: KindSyntax},
		{code: CodeSortMismatch, expected: KindSemantic},
		{code: CodeMultipleConjectures, expected: KindSemantic},
		{code: CodeEOF, expected: KindInternal},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.code, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, KindOf(testCase.code))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	loc := Location{URI: "/a.p", Location: source.Location{Line: 3, Column: 4}}
	require.Nil(t, Wrap(loc, CodeFileNotFound, nil))

	e := Wrap(loc, CodeUnknownFatal, io.ErrUnexpectedEOF)
	require.True(t, errors.Is(e, io.ErrUnexpectedEOF))
	require.Equal(t, "/a.p:3:4 -- T0000: unexpected EOF", e.Error())

	inner := NewToken(loc, CodeUnexpectedToken, "bad", ")")
	outer := Wrap(Location{URI: "/b.p"}, CodeFileNotFound, inner)
	require.Equal(t, ")", outer.Token())
	require.Equal(t, KindIO, outer.Kind())
	var unwrapped Exception
	require.True(t, errors.As(errors.Unwrap(outer), &unwrapped))
	require.Equal(t, CodeUnexpectedToken, unwrapped.Code())
}

func TestReporter(t *testing.T) {
	t.Parallel()

	r := NewReporter([]string{CodeUnknownDirective})
	loc := Location{URI: "/a.p"}
	require.Nil(t, r.Report(New(loc, CodeUnknownDirective, "ignored")))
	require.NotNil(t, r.Report(New(loc, CodeSortMismatch, "fatal")))
	require.Len(t, r.Reported(), 2)
}

func TestErrorWithPos(t *testing.T) {
	t.Parallel()

	e := NewToken(Location{URI: "/x.p", Location: source.Location{Line: 2, Column: 7, Offset: 12}}, CodeUnexpectedToken, "unexpected token", "]")
	ewp := ToErrorWithPos(e)
	require.Equal(t, 2, ewp.GetPosition().Line)
	require.Equal(t, `/x.p:2:7: SyntaxError T0101: unexpected token (at "]")`, ewp.Error())

	back := FromErrorWithPos(ewp, CodeUnknownFatal)
	require.Equal(t, CodeUnexpectedToken, back.Code())
	require.Equal(t, int32(7), back.Location().Column)

	var printed []string
	h := pcreporter.NewHandler(pcreporter.NewReporter(func(err pcreporter.ErrorWithPos) error {
		printed = append(printed, err.Error())
		return nil
	}, nil))
	require.ErrorIs(t, Handle(h, []Exception{e, e}), pcreporter.ErrInvalidSource)
	require.Len(t, printed, 2)
}
