// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"bufio"
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"gopkg.microglot.org/tptp.go/internal/optional"
	"gopkg.microglot.org/tptp.go/internal/source"
)

// NewUnicodeFileBody converts a FileBody into an iterator of code points.
func NewUnicodeFileBody(b source.FileBody) source.Iterator[source.CodePoint] {
	return NewUnicodeFileBodyCtx(context.Background(), b)
}

// NewUnicodeFileBodyCtx is the same as NewUnicodeFileBody but uses the given
// context for all read operations for cancellation or other purposes. The
// underlying body is closed at most once no matter how often Close is called.
func NewUnicodeFileBodyCtx(ctx context.Context, b source.FileBody) source.Iterator[source.CodePoint] {
	return newFileBody(ctx, b)
}

type fileBody struct {
	readCloser io.ReadCloser
	scanner    *bufio.Scanner
	closed     bool
}

func newFileBody(ctx context.Context, r source.FileBody) *fileBody {
	rc := &fileBodyIO{
		ctx:  ctx,
		body: r,
	}
	scanner := bufio.NewScanner(rc)
	scanner.Split(bufio.ScanRunes)
	return &fileBody{
		readCloser: rc,
		scanner:    scanner,
	}
}

func (f *fileBody) Next(ctx context.Context) optional.Optional[source.CodePoint] {
	if f.closed {
		return optional.None[source.CodePoint]()
	}
	ok := f.scanner.Scan()
	if !ok {
		return optional.None[source.CodePoint]()
	}
	r, _ := utf8.DecodeRune(f.scanner.Bytes())
	return optional.Some(source.CodePoint(r))
}

func (f *fileBody) Close(context.Context) error {
	if f.closed {
		return nil
	}
	f.closed = true
	_ = f.readCloser.Close()
	return f.scanner.Err()
}

type fileBodyIO struct {
	ctx  context.Context
	body source.FileBody
}

func (self *fileBodyIO) Read(p []byte) (int, error) {
	b, err := self.body.Read(self.ctx, int32(len(p)))
	if err != nil && !errors.Is(err, io.EOF) {
		return len(b), err
	}
	copy(p, b)
	if errors.Is(err, io.EOF) {
		return len(b), io.EOF
	}
	return len(b), nil
}

func (self *fileBodyIO) Close() error {
	return self.body.Close(self.ctx)
}
