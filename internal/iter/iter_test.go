// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/source"
)

type elem struct {
	value int
}

func elems(n int) []*elem {
	out := make([]*elem, 0, n)
	for y := 0; y < n; y = y + 1 {
		out = append(out, &elem{value: y})
	}
	return out
}

func TestLookahead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10

	for x := 0; x < numValues; x = x + 1 {
		x := x
		t.Run(fmt.Sprintf("LA(%d)", x), func(t *testing.T) {
			t.Parallel()
			look := NewLookahead(NewSlice(elems(numValues)), uint8(x))
			for y := 0; y < numValues; y = y + 1 {
				val := look.Next(ctx)
				require.True(t, val.IsPresent())
				require.Equal(t, y, val.Value().value)

				expectedPeek := y + x
				peek := look.Lookahead(ctx, uint8(x))
				if expectedPeek < numValues {
					require.True(t, peek.IsPresent())
					require.Equal(t, expectedPeek, peek.Value().value)
				} else {
					require.False(t, peek.IsPresent())
				}
			}
			require.False(t, look.Next(ctx).IsPresent())
			require.Nil(t, look.Close(ctx))
		})
	}
}

func TestLookaheadBeyondDepth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	look := NewLookahead(NewSlice(elems(5)), 2)
	require.True(t, look.Lookahead(ctx, 2).IsPresent())
	require.False(t, look.Lookahead(ctx, 3).IsPresent())
	require.Equal(t, 0, look.Lookahead(ctx, 0).Value().value)
}

func TestLookaheadFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	even := source.Filter[*elem](FilterFunc[*elem](func(ctx context.Context, val *elem) bool {
		return val.value%2 == 0
	}))
	look := NewLookahead(NewIteratorFilter(NewSlice(elems(10)), even), 2)
	var seen []int
	for v := look.Next(ctx); v.IsPresent(); v = look.Next(ctx) {
		seen = append(seen, v.Value().value)
		if peek := look.Lookahead(ctx, 1); peek.IsPresent() {
			require.Equal(t, v.Value().value+2, peek.Value().value)
		}
	}
	require.Equal(t, []int{0, 2, 4, 6, 8}, seen)
}

func TestCollect(t *testing.T) {
	t.Parallel()

	out, err := Collect(context.Background(), NewSlice([]string{"a", "b"}))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, out)
}

type stringBody struct {
	r      io.Reader
	closed int
}

func (b *stringBody) Read(ctx context.Context, size int32) ([]byte, error) {
	buf := make([]byte, size)
	n, err := b.r.Read(buf)
	return buf[:n], err
}

func (b *stringBody) Close(ctx context.Context) error {
	b.closed = b.closed + 1
	return nil
}

func TestUnicodeFileBody(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	body := &stringBody{r: strings.NewReader("p(ä)\n")}
	points, err := Collect(ctx, NewUnicodeFileBodyCtx(ctx, body))
	require.NoError(t, err)
	require.Equal(t, []source.CodePoint{'p', '(', 'ä', ')', '\n'}, points)
	require.Equal(t, 1, body.closed)
}

var benchEscapeValue *elem
var benchEscapeValuePeek *elem

func BenchmarkLookahead(b *testing.B) {
	ctx := context.Background()
	sliceSize := 1000
	look := NewLookahead(NewSlice(elems(sliceSize)), 1)

	var loopEscapeValue *elem
	var loopEscapeValuePeek *elem
	b.ResetTimer()
	for n := 0; n < b.N; n = n + 1 {
		for x := 0; x < sliceSize; x = x + 1 {
			loopEscapeValue = look.Next(ctx).Value()
			loopEscapeValuePeek = look.Lookahead(ctx, 1).Value()
		}
	}
	benchEscapeValue = loopEscapeValue
	benchEscapeValuePeek = loopEscapeValuePeek
}
