// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/fs"
	"gopkg.microglot.org/tptp.go/internal/iter"
	"gopkg.microglot.org/tptp.go/internal/source"
)

func lexAll(t *testing.T, input string, options ...LexerOption) ([]*Token, exc.Exception) {
	t.Helper()
	ctx := context.Background()
	lf, err := NewLexerTPTP(options...).Lex(ctx, fs.NewFileString("/test.p", input, source.FileKindProblem))
	require.NoError(t, err)
	stream, err := lf.Tokens(ctx)
	require.NoError(t, err)
	toks, err := iter.Collect[*Token](ctx, stream)
	require.NoError(t, err)
	return toks, stream.Err()
}

type lexed struct {
	kind  TokenType
	value string
}

func kinds(toks []*Token) []lexed {
	out := make([]lexed, 0, len(toks))
	for _, tok := range toks {
		out = append(out, lexed{kind: tok.Type, value: tok.Value})
	}
	return out
}

func TestLexer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		options  []LexerOption
		expected []lexed
	}{
		{
			name:     "empty file",
			input:    "",
			expected: []lexed{{TokenTypeEOF, ""}},
		},
		{
			name:     "comments and whitespace",
			input:    "% line comment\n/* block\n comment */ \t\r\n",
			expected: []lexed{{TokenTypeEOF, ""}},
		},
		{
			name:  "unit",
			input: "fof(ax1, axiom, p(X)).",
			expected: []lexed{
				{TokenTypeName, "fof"}, {TokenTypeLeftParen, "("}, {TokenTypeName, "ax1"}, {TokenTypeComma, ","},
				{TokenTypeName, "axiom"}, {TokenTypeComma, ","}, {TokenTypeName, "p"}, {TokenTypeLeftParen, "("},
				{TokenTypeVariable, "X"}, {TokenTypeRightParen, ")"}, {TokenTypeRightParen, ")"}, {TokenTypeDot, "."},
				{TokenTypeEOF, ""},
			},
		},
		{
			name:  "connectives",
			input: "~ & | ~& ~| = != => <= <=> <~> ! ? !! ?? !> ?* := ^ @ @+ @- * + > << -->",
			expected: []lexed{
				{TokenTypeNot, "~"}, {TokenTypeAnd, "&"}, {TokenTypeOr, "|"}, {TokenTypeNotAnd, "~&"},
				{TokenTypeNotOr, "~|"}, {TokenTypeEqual, "="}, {TokenTypeNotEqual, "!="}, {TokenTypeImply, "=>"},
				{TokenTypeReverseImply, "<="}, {TokenTypeIff, "<=>"}, {TokenTypeXor, "<~>"}, {TokenTypeForall, "!"},
				{TokenTypeExists, "?"}, {TokenTypeSigma, "!!"}, {TokenTypePi, "??"}, {TokenTypeForallType, "!>"},
				{TokenTypeExistsType, "?*"}, {TokenTypeAssign, ":="}, {TokenTypeLambda, "^"}, {TokenTypeApply, "@"},
				{TokenTypeApplyPlus, "@+"}, {TokenTypeApplyMinus, "@-"}, {TokenTypeStar, "*"}, {TokenTypePlus, "+"},
				{TokenTypeArrow, ">"}, {TokenTypeSubtype, "<<"}, {TokenTypeSequent, "-->"}, {TokenTypeEOF, ""},
			},
		},
		{
			name:  "no space between connectives",
			input: "p<=>q=>~r",
			expected: []lexed{
				{TokenTypeName, "p"}, {TokenTypeIff, "<=>"}, {TokenTypeName, "q"}, {TokenTypeImply, "=>"},
				{TokenTypeNot, "~"}, {TokenTypeName, "r"}, {TokenTypeEOF, ""},
			},
		},
		{
			name:  "numbers",
			input: "12 -3 +4 3/4 -1/2 1.5 2.5e-3 7E2 0",
			expected: []lexed{
				{TokenTypeInteger, "12"}, {TokenTypeInteger, "-3"}, {TokenTypeInteger, "+4"},
				{TokenTypeRational, "3/4"}, {TokenTypeRational, "-1/2"}, {TokenTypeReal, "1.5"},
				{TokenTypeReal, "2.5e-3"}, {TokenTypeReal, "7E2"}, {TokenTypeInteger, "0"},
				{TokenTypeEOF, ""},
			},
		},
		{
			name:  "quoted",
			input: `'hello world' 'it\'s' "distinct \"obj\"" 'a\b'`,
			expected: []lexed{
				{TokenTypeName, "hello world"}, {TokenTypeName, "it's"}, {TokenTypeString, `distinct "obj"`},
				{TokenTypeName, `a\b`}, {TokenTypeEOF, ""},
			},
		},
		{
			name:  "reserved words",
			input: "$true $false $tType $o $i $int $rat $real $ite $let $array $select $store $sum $$skolem",
			expected: []lexed{
				{TokenTypeTrue, "$true"}, {TokenTypeFalse, "$false"}, {TokenTypeTType, "$tType"},
				{TokenTypeBoolType, "$o"}, {TokenTypeDefaultType, "$i"}, {TokenTypeIntType, "$int"},
				{TokenTypeRatType, "$rat"}, {TokenTypeRealType, "$real"}, {TokenTypeIte, "$ite"},
				{TokenTypeLet, "$let"}, {TokenTypeTheorySort, "$array"}, {TokenTypeTheoryFunction, "$select"},
				{TokenTypeTheoryFunction, "$store"}, {TokenTypeName, "$sum"}, {TokenTypeDollarDollar, "$$skolem"},
				{TokenTypeEOF, ""},
			},
		},
		{
			name:    "filtered reserved words",
			input:   "$true $sum $$skolem",
			options: []LexerOption{WithOptionFilterReserved(true)},
			expected: []lexed{
				{TokenTypeTrue, "$true"}, {TokenTypeName, "sum"}, {TokenTypeName, "skolem"}, {TokenTypeEOF, ""},
			},
		},
		{
			name:  "variables",
			input: "X Y_1 _anon",
			expected: []lexed{
				{TokenTypeVariable, "X"}, {TokenTypeVariable, "Y_1"}, {TokenTypeVariable, "_anon"}, {TokenTypeEOF, ""},
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			toks, err := lexAll(t, testCase.input, testCase.options...)
			require.Nil(t, err)
			require.Equal(t, testCase.expected, kinds(toks))
		})
	}
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		input  string
		code   string
		token  string
		line   int32
		column int32
	}{
		{name: "unterminated quote", input: "fof(a, axiom,\n 'abc", code: exc.CodeUnterminatedLiteral, token: "'abc", line: 2, column: 2},
		{name: "unterminated string", input: `"abc`, code: exc.CodeUnterminatedLiteral, token: `"abc`, line: 1, column: 1},
		{name: "unterminated comment", input: "p /* q", code: exc.CodeUnterminatedLiteral, token: "/*", line: 1, column: 3},
		{name: "zero denominator", input: "3/0", code: exc.CodeInvalidNumber, token: "3/", line: 1, column: 1},
		{name: "missing exponent", input: "  2e+", code: exc.CodeInvalidNumber, token: "2e+", line: 1, column: 3},
		{name: "dot without digits", input: "p(1.)", code: exc.CodeInvalidNumber, token: "1.", line: 1, column: 3},
		{name: "lone minus", input: "- 3", code: exc.CodeInvalidNumber, token: "-", line: 1, column: 1},
		{name: "unknown symbol", input: "p # q", code: exc.CodeUnrecognizedSymbol, token: "#", line: 1, column: 3},
		{name: "lone angle", input: "<", code: exc.CodeUnrecognizedSymbol, token: "<", line: 1, column: 1},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			toks, err := lexAll(t, testCase.input)
			require.NotNil(t, err)
			require.Equal(t, testCase.code, err.Code())
			require.Equal(t, exc.KindSyntax, err.Kind())
			require.Equal(t, testCase.token, err.Token())
			require.Equal(t, testCase.line, err.Location().Line)
			require.Equal(t, testCase.column, err.Location().Column)
			require.Equal(t, "/test.p", err.Location().URI)
			require.Equal(t, TokenTypeError, toks[len(toks)-1].Type)
		})
	}
}

func TestLexerPositions(t *testing.T) {
	t.Parallel()

	toks, err := lexAll(t, "p(a)\n  <=> 'q'")
	require.Nil(t, err)
	require.Len(t, toks, 7)
	iff := toks[4]
	require.Equal(t, TokenTypeIff, iff.Type)
	require.Equal(t, source.Location{Line: 2, Column: 3, Offset: 7}, *iff.Span.Start)
	require.Equal(t, source.Location{Line: 2, Column: 6, Offset: 10}, *iff.Span.End)
	q := toks[5]
	require.Equal(t, source.Location{Line: 2, Column: 7, Offset: 11}, *q.Span.Start)
	require.Equal(t, "q", q.Value)
}

// Numerals must classify by their shape alone: a slash makes a rational, a
// dot or exponent makes a real and anything else is an integer.
func TestLexerLiteralClassification(t *testing.T) {
	t.Parallel()

	for _, sign := range []string{"", "-", "+"} {
		for _, digits := range []string{"0", "7", "42", "123456789012345678901234567890"} {
			cases := map[string]TokenType{
				sign + digits:           TokenTypeInteger,
				sign + digits + "/3":    TokenTypeRational,
				sign + digits + ".25":   TokenTypeReal,
				sign + digits + "e10":   TokenTypeReal,
				sign + digits + ".5E-2": TokenTypeReal,
			}
			for input, expected := range cases {
				toks, err := lexAll(t, input)
				require.Nil(t, err, input)
				require.Len(t, toks, 2, input)
				require.Equal(t, expected, toks[0].Type, input)
				require.Equal(t, input, toks[0].Value)
			}
		}
	}
}
