// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"context"
	"fmt"
	"path"
	"strings"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/iter"
	"gopkg.microglot.org/tptp.go/internal/source"
)

const (
	cursorLookahead = 2
)

// cursor is the parser's view of one open file: the current token plus a small
// window of lookahead. Each pending include has its own cursor.
type cursor struct {
	ctx    context.Context
	uri    string
	stream TokenStream
	tokens source.Lookahead[*Token]
	// allowed restricts the units taken from this file by name. A nil map
	// keeps every unit.
	allowed map[string]bool
	last    source.Location
	closed  bool
}

func newCursor(ctx context.Context, uri string, stream TokenStream, allowed map[string]bool) *cursor {
	c := &cursor{
		ctx:     ctx,
		uri:     uri,
		stream:  stream,
		tokens:  iter.NewLookahead[*Token](stream, cursorLookahead),
		allowed: allowed,
		last:    source.Location{Line: 1, Column: 1},
	}
	_ = c.tokens.Next(ctx)
	return c
}

// dir is the directory of the file, used to resolve nested includes.
func (c *cursor) dir() string {
	return path.Dir(c.uri)
}

// peek returns the token n positions ahead of the current one. Past the end
// of the stream an EOF token is synthesized at the last known location.
func (c *cursor) peek(n uint8) *Token {
	t := c.tokens.Lookahead(c.ctx, n)
	if !t.IsPresent() {
		return newToken(c.last, c.last, TokenTypeEOF, "")
	}
	return t.Value()
}

func (c *cursor) current() *Token {
	return c.peek(0)
}

func (c *cursor) is(kind TokenType) bool {
	return c.current().Type == kind
}

// advance consumes the current token and returns it.
func (c *cursor) advance() *Token {
	t := c.current()
	if t.Type != TokenTypeEOF && t.Type != TokenTypeError {
		_ = c.tokens.Next(c.ctx)
	}
	if t.Span != nil && t.Span.End != nil {
		c.last = *t.Span.End
	}
	return t
}

// expect consumes a token of the given type or fails with a syntax error
// naming what was expected.
func (c *cursor) expect(kind TokenType) (*Token, exc.Exception) {
	t := c.current()
	if t.Type != kind {
		return nil, c.unexpected(t, fmt.Sprintf("%s expected", kind))
	}
	return c.advance(), nil
}

// expectOneOf consumes a token of any of the given types.
func (c *cursor) expectOneOf(kinds ...TokenType) (*Token, exc.Exception) {
	t := c.current()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if t.Type == kind {
			return c.advance(), nil
		}
		names = append(names, kind.String())
	}
	return nil, c.unexpected(t, fmt.Sprintf("%s expected", strings.Join(names, " or ")))
}

// expectName consumes a name token and returns its text.
func (c *cursor) expectName(what string) (*Token, exc.Exception) {
	t := c.current()
	if t.Type != TokenTypeName {
		return nil, c.unexpected(t, fmt.Sprintf("%s expected", what))
	}
	return c.advance(), nil
}

// skipToRPAR consumes tokens up to and including the right parenthesis that
// closes the one already open.
func (c *cursor) skipToRPAR() exc.Exception {
	depth := 0
	for {
		t := c.current()
		switch t.Type {
		case TokenTypeEOF, TokenTypeError:
			return c.unexpected(t, ") expected")
		case TokenTypeLeftParen:
			depth = depth + 1
		case TokenTypeRightParen:
			if depth == 0 {
				c.advance()
				return nil
			}
			depth = depth - 1
		}
		c.advance()
	}
}

// unexpected builds the error for token t. A failed lexer takes precedence
// since its error token carries no useful syntax.
func (c *cursor) unexpected(t *Token, message string) exc.Exception {
	if t.Type == TokenTypeError {
		if err := c.stream.Err(); err != nil {
			return err
		}
	}
	code := exc.CodeUnexpectedToken
	if t.Type == TokenTypeEOF {
		code = exc.CodeUnexpectedEOF
		message = message + " but reached end of file"
	}
	return exc.NewToken(c.location(t), code, message, t.String())
}

// fail builds an error of any code located at token t.
func (c *cursor) fail(t *Token, code string, message string) exc.Exception {
	return exc.NewToken(c.location(t), code, message, t.String())
}

func (c *cursor) location(t *Token) exc.Location {
	loc := c.last
	if t != nil && t.Span != nil && t.Span.Start != nil {
		loc = *t.Span.Start
	}
	return exc.Location{URI: c.uri, Location: loc}
}

// keep reports whether a unit with the given name passes the allow-list.
func (c *cursor) keep(name string) bool {
	return c.allowed == nil || c.allowed[name]
}

func (c *cursor) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.tokens.Close(c.ctx)
}
