// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/iter"
	"gopkg.microglot.org/tptp.go/internal/optional"
	"gopkg.microglot.org/tptp.go/internal/source"
)

const (
	lexerTPTPLookahead = 3
)

// TokenStream is the token iterator of one file. After the stream ends early
// Err holds the reason.
type TokenStream interface {
	source.Iterator[*Token]
	Err() exc.Exception
}

type LexerOption func(*LexerTPTP)

// WithOptionFilterReserved makes the lexer strip the leading dollars from
// dollar words that are not reserved, so that $foo and $$foo both lex as the
// name foo.
func WithOptionFilterReserved(enabled bool) LexerOption {
	return func(l *LexerTPTP) {
		l.filterReserved = enabled
	}
}

// LexerTPTP implements a tokenizer for the TPTP syntax.
type LexerTPTP struct {
	filterReserved bool
}

func NewLexerTPTP(options ...LexerOption) *LexerTPTP {
	l := &LexerTPTP{}
	for _, option := range options {
		option(l)
	}
	return l
}

func (self *LexerTPTP) Lex(ctx context.Context, f source.File) (*LexerFileTPTP, error) {
	return &LexerFileTPTP{
		File:           f,
		filterReserved: self.filterReserved,
	}, nil
}

type LexerFileTPTP struct {
	source.File
	filterReserved bool
}

func (self *LexerFileTPTP) Tokens(ctx context.Context) (TokenStream, error) {
	b, err := self.File.Body(ctx)
	if err != nil {
		return nil, err
	}
	points := iter.NewLookahead(iter.NewUnicodeFileBodyCtx(ctx, b), lexerTPTPLookahead)
	return &lexerFileTPTPTokens{
		uri:            self.File.Path(ctx),
		body:           points,
		filterReserved: self.filterReserved,
		line:           1,
	}, nil
}

type lexerFileTPTPTokens struct {
	uri            string
	body           source.Lookahead[source.CodePoint]
	filterReserved bool
	// line is the current line, col the number of characters consumed on it
	// and offset the number of bytes consumed in total.
	line   int32
	col    int32
	offset int64
	done   bool
	err    exc.Exception
}

func (self *lexerFileTPTPTokens) Next(ctx context.Context) optional.Optional[*Token] {
	if self.done {
		return optional.None[*Token]()
	}
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		r := rune(point.Value())
		start := self.mark(r)
		switch r {
		case 0xFEFF:
			if start.Offset != 0 {
				return self.fail(start, exc.CodeUnsupportedFileFormat, "invalid UTF-8 BOM location", string(r))
			}
			self.col = 0
			continue
		case ' ', '\t', '\f', '\v':
			continue
		case '\n':
			self.newLine()
			continue
		case '\r':
			if self.peekIs(ctx, 1, '\n') {
				_ = self.next(ctx)
			}
			self.newLine()
			continue
		case '%':
			self.skipLine(ctx)
			continue
		case '/':
			if !self.peekIs(ctx, 1, '*') {
				return self.fail(start, exc.CodeUnrecognizedSymbol, "unrecognized symbol", "/")
			}
			_ = self.next(ctx)
			if !self.skipBlock(ctx) {
				return self.fail(start, exc.CodeUnterminatedLiteral, "unterminated comment", "/*")
			}
			continue
		case '(':
			return self.single(start, TokenTypeLeftParen, "(")
		case ')':
			return self.single(start, TokenTypeRightParen, ")")
		case '[':
			return self.single(start, TokenTypeLeftBracket, "[")
		case ']':
			return self.single(start, TokenTypeRightBracket, "]")
		case ',':
			return self.single(start, TokenTypeComma, ",")
		case '.':
			return self.single(start, TokenTypeDot, ".")
		case '&':
			return self.single(start, TokenTypeAnd, "&")
		case '|':
			return self.single(start, TokenTypeOr, "|")
		case '*':
			return self.single(start, TokenTypeStar, "*")
		case '>':
			return self.single(start, TokenTypeArrow, ">")
		case '^':
			return self.single(start, TokenTypeLambda, "^")
		case '~':
			switch {
			case self.peekIs(ctx, 1, '|'):
				return self.double(ctx, start, TokenTypeNotOr, "~|")
			case self.peekIs(ctx, 1, '&'):
				return self.double(ctx, start, TokenTypeNotAnd, "~&")
			}
			return self.single(start, TokenTypeNot, "~")
		case '!':
			switch {
			case self.peekIs(ctx, 1, '='):
				return self.double(ctx, start, TokenTypeNotEqual, "!=")
			case self.peekIs(ctx, 1, '>'):
				return self.double(ctx, start, TokenTypeForallType, "!>")
			case self.peekIs(ctx, 1, '!'):
				return self.double(ctx, start, TokenTypeSigma, "!!")
			}
			return self.single(start, TokenTypeForall, "!")
		case '?':
			switch {
			case self.peekIs(ctx, 1, '?'):
				return self.double(ctx, start, TokenTypePi, "??")
			case self.peekIs(ctx, 1, '*'):
				return self.double(ctx, start, TokenTypeExistsType, "?*")
			}
			return self.single(start, TokenTypeExists, "?")
		case '=':
			if self.peekIs(ctx, 1, '>') {
				return self.double(ctx, start, TokenTypeImply, "=>")
			}
			return self.single(start, TokenTypeEqual, "=")
		case ':':
			if self.peekIs(ctx, 1, '=') {
				return self.double(ctx, start, TokenTypeAssign, ":=")
			}
			return self.single(start, TokenTypeColon, ":")
		case '@':
			switch {
			case self.peekIs(ctx, 1, '+'):
				return self.double(ctx, start, TokenTypeApplyPlus, "@+")
			case self.peekIs(ctx, 1, '-'):
				return self.double(ctx, start, TokenTypeApplyMinus, "@-")
			}
			return self.single(start, TokenTypeApply, "@")
		case '<':
			switch {
			case self.peekIs(ctx, 1, '<'):
				return self.double(ctx, start, TokenTypeSubtype, "<<")
			case self.peekIs(ctx, 1, '~') && self.peekIs(ctx, 2, '>'):
				return self.triple(ctx, start, TokenTypeXor, "<~>")
			case self.peekIs(ctx, 1, '=') && self.peekIs(ctx, 2, '>'):
				return self.triple(ctx, start, TokenTypeIff, "<=>")
			case self.peekIs(ctx, 1, '='):
				return self.double(ctx, start, TokenTypeReverseImply, "<=")
			}
			return self.fail(start, exc.CodeUnrecognizedSymbol, "unrecognized symbol", "<")
		case '-':
			if self.peekIs(ctx, 1, '-') && self.peekIs(ctx, 2, '>') {
				return self.triple(ctx, start, TokenTypeSequent, "-->")
			}
			return self.readNumber(ctx, start, r)
		case '+':
			if n := self.body.Lookahead(ctx, 1); n.IsPresent() && isDigit(rune(n.Value())) {
				return self.readNumber(ctx, start, r)
			}
			return self.single(start, TokenTypePlus, "+")
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return self.readNumber(ctx, start, r)
		case '\'':
			return self.readQuoted(ctx, start, '\'', TokenTypeName)
		case '"':
			return self.readQuoted(ctx, start, '"', TokenTypeString)
		case '$':
			return self.readReserved(ctx, start)
		default:
			switch {
			case r >= 'a' && r <= 'z':
				return self.readWord(ctx, start, r, TokenTypeName)
			case r >= 'A' && r <= 'Z', r == '_':
				return self.readWord(ctx, start, r, TokenTypeVariable)
			}
			return self.fail(start, exc.CodeUnrecognizedSymbol, "unrecognized symbol", string(r))
		}
	}
	self.done = true
	here := self.end()
	return optional.Some(newToken(here, here, TokenTypeEOF, ""))
}

func (self *lexerFileTPTPTokens) Err() exc.Exception {
	return self.err
}

func (self *lexerFileTPTPTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func (self *lexerFileTPTPTokens) single(start source.Location, kind TokenType, value string) optional.Optional[*Token] {
	return optional.Some(newToken(start, self.end(), kind, value))
}

func (self *lexerFileTPTPTokens) double(ctx context.Context, start source.Location, kind TokenType, value string) optional.Optional[*Token] {
	_ = self.next(ctx)
	return optional.Some(newToken(start, self.end(), kind, value))
}

func (self *lexerFileTPTPTokens) triple(ctx context.Context, start source.Location, kind TokenType, value string) optional.Optional[*Token] {
	_ = self.next(ctx)
	_ = self.next(ctx)
	return optional.Some(newToken(start, self.end(), kind, value))
}

// fail records the lexical error and ends the stream with a single error
// token.
func (self *lexerFileTPTPTokens) fail(start source.Location, code string, message string, text string) optional.Optional[*Token] {
	self.err = exc.NewToken(exc.Location{URI: self.uri, Location: start}, code, message, text)
	self.done = true
	return optional.Some(newToken(start, self.end(), TokenTypeError, text))
}

func (self *lexerFileTPTPTokens) skipLine(ctx context.Context) {
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || n.Value() == '\n' || n.Value() == '\r' {
			return
		}
		_ = self.next(ctx)
	}
}

func (self *lexerFileTPTPTokens) skipBlock(ctx context.Context) bool {
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		switch rune(point.Value()) {
		case '*':
			if self.peekIs(ctx, 1, '/') {
				_ = self.next(ctx)
				return true
			}
		case '\n':
			self.newLine()
		case '\r':
			if self.peekIs(ctx, 1, '\n') {
				_ = self.next(ctx)
			}
			self.newLine()
		}
	}
	return false
}

func (self *lexerFileTPTPTokens) readWord(ctx context.Context, start source.Location, first rune, kind TokenType) optional.Optional[*Token] {
	var builder strings.Builder
	_, _ = builder.WriteRune(first)
	self.readWordChars(ctx, &builder)
	return optional.Some(newToken(start, self.end(), kind, builder.String()))
}

func (self *lexerFileTPTPTokens) readWordChars(ctx context.Context, builder *strings.Builder) {
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || !isWordChar(rune(n.Value())) {
			return
		}
		_ = self.next(ctx)
		_, _ = builder.WriteRune(rune(n.Value()))
	}
}

func (self *lexerFileTPTPTokens) readReserved(ctx context.Context, start source.Location) optional.Optional[*Token] {
	var builder strings.Builder
	_, _ = builder.WriteRune('$')
	if self.peekIs(ctx, 1, '$') {
		_ = self.next(ctx)
		_, _ = builder.WriteRune('$')
	}
	self.readWordChars(ctx, &builder)
	word := builder.String()
	if word == "$" || word == "$$" {
		return self.fail(start, exc.CodeUnrecognizedSymbol, "unrecognized symbol", word)
	}
	if kind, ok := reservedWords[word]; ok {
		return optional.Some(newToken(start, self.end(), kind, word))
	}
	if self.filterReserved {
		return optional.Some(newToken(start, self.end(), TokenTypeName, strings.TrimLeft(word, "$")))
	}
	if strings.HasPrefix(word, "$$") {
		return optional.Some(newToken(start, self.end(), TokenTypeDollarDollar, word))
	}
	return optional.Some(newToken(start, self.end(), TokenTypeName, word))
}

// readQuoted reads a quoted atom or a distinct object. A backslash escapes the
// delimiter and itself and is kept verbatim before any other character.
func (self *lexerFileTPTPTokens) readQuoted(ctx context.Context, start source.Location, delim rune, kind TokenType) optional.Optional[*Token] {
	var builder strings.Builder
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		r := rune(point.Value())
		switch r {
		case delim:
			return optional.Some(newToken(start, self.end(), kind, builder.String()))
		case '\\':
			n := self.next(ctx)
			if !n.IsPresent() {
				break
			}
			escaped := rune(n.Value())
			if escaped != delim && escaped != '\\' {
				_, _ = builder.WriteRune('\\')
			}
			_, _ = builder.WriteRune(escaped)
		case '\n':
			self.newLine()
			_, _ = builder.WriteRune(r)
		default:
			_, _ = builder.WriteRune(r)
		}
	}
	what := "quoted atom"
	if kind == TokenTypeString {
		what = "string"
	}
	return self.fail(start, exc.CodeUnterminatedLiteral, fmt.Sprintf("unterminated %s", what), string(delim)+builder.String())
}

// readNumber reads an integer, rational or real literal starting with first,
// which is a digit or a sign.
func (self *lexerFileTPTPTokens) readNumber(ctx context.Context, start source.Location, first rune) optional.Optional[*Token] {
	var builder strings.Builder
	_, _ = builder.WriteRune(first)
	if first == '-' || first == '+' {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || !isDigit(rune(n.Value())) {
			return self.fail(start, exc.CodeInvalidNumber, "wrong number format", builder.String())
		}
		_ = self.next(ctx)
		first = rune(n.Value())
		_, _ = builder.WriteRune(first)
	}
	if first != '0' {
		self.readDigits(ctx, &builder)
	}
	n := self.body.Lookahead(ctx, 1)
	if !n.IsPresent() {
		return optional.Some(newToken(start, self.end(), TokenTypeInteger, builder.String()))
	}
	switch rune(n.Value()) {
	case '/':
		_ = self.next(ctx)
		_, _ = builder.WriteRune('/')
		d := self.body.Lookahead(ctx, 1)
		if !d.IsPresent() || !isDigit(rune(d.Value())) || d.Value() == '0' {
			return self.fail(start, exc.CodeInvalidNumber, "wrong rational number format", builder.String())
		}
		self.readDigits(ctx, &builder)
		return optional.Some(newToken(start, self.end(), TokenTypeRational, builder.String()))
	case '.':
		_ = self.next(ctx)
		_, _ = builder.WriteRune('.')
		d := self.body.Lookahead(ctx, 1)
		if !d.IsPresent() || !isDigit(rune(d.Value())) {
			return self.fail(start, exc.CodeInvalidNumber, "wrong number format", builder.String())
		}
		self.readDigits(ctx, &builder)
		if e := self.body.Lookahead(ctx, 1); e.IsPresent() && (e.Value() == 'e' || e.Value() == 'E') {
			return self.readExponent(ctx, start, &builder)
		}
		return optional.Some(newToken(start, self.end(), TokenTypeReal, builder.String()))
	case 'e', 'E':
		return self.readExponent(ctx, start, &builder)
	}
	return optional.Some(newToken(start, self.end(), TokenTypeInteger, builder.String()))
}

func (self *lexerFileTPTPTokens) readExponent(ctx context.Context, start source.Location, builder *strings.Builder) optional.Optional[*Token] {
	e := self.next(ctx)
	_, _ = builder.WriteRune(rune(e.Value()))
	if self.peekIs(ctx, 1, '-') || self.peekIs(ctx, 1, '+') {
		s := self.next(ctx)
		_, _ = builder.WriteRune(rune(s.Value()))
	}
	d := self.body.Lookahead(ctx, 1)
	if !d.IsPresent() || !isDigit(rune(d.Value())) {
		return self.fail(start, exc.CodeInvalidNumber, "wrong number format", builder.String())
	}
	self.readDigits(ctx, builder)
	return optional.Some(newToken(start, self.end(), TokenTypeReal, builder.String()))
}

func (self *lexerFileTPTPTokens) readDigits(ctx context.Context, builder *strings.Builder) {
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || !isDigit(rune(n.Value())) {
			return
		}
		_ = self.next(ctx)
		_, _ = builder.WriteRune(rune(n.Value()))
	}
}

func (self *lexerFileTPTPTokens) peekIs(ctx context.Context, n uint8, r rune) bool {
	p := self.body.Lookahead(ctx, n)
	return p.IsPresent() && rune(p.Value()) == r
}

func (self *lexerFileTPTPTokens) next(ctx context.Context) optional.Optional[source.CodePoint] {
	n := self.body.Next(ctx)
	if n.IsPresent() {
		self.col = self.col + 1
		self.offset = self.offset + int64(utf8.RuneLen(rune(n.Value())))
	}
	return n
}

// mark is the location of r, the code point consumed last.
func (self *lexerFileTPTPTokens) mark(r rune) source.Location {
	return source.Location{
		Line:   self.line,
		Column: self.col,
		Offset: self.offset - int64(utf8.RuneLen(r)),
	}
}

// end is the location just past the code point consumed last.
func (self *lexerFileTPTPTokens) end() source.Location {
	return source.Location{
		Line:   self.line,
		Column: self.col + 1,
		Offset: self.offset,
	}
}

func (self *lexerFileTPTPTokens) newLine() {
	self.line = self.line + 1
	self.col = 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_' || r == '$'
}
