// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package source defines the interfaces shared by the file systems, the
// character and token iterators, and the parser.
package source

import (
	"context"
	"fmt"

	"gopkg.microglot.org/tptp.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindProblem
	FileKindAxioms
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindProblem:
		return "problem"
	case FileKindAxioms:
		return "axioms"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

// Location is a 1-based line and column plus a 0-based byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

type Span struct {
	Start *Location
	End   *Location
}
