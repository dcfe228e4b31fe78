// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/source"
)

func mapFS(files map[string]string) FileSystemLocalOption {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return WithOptionFSFactory(func(string) iofs.FS { return m })
}

func readAll(t *testing.T, f source.File) string {
	t.Helper()
	ctx := context.Background()
	b, err := f.Body(ctx)
	require.NoError(t, err)
	var out []byte
	for {
		chunk, err := b.Read(ctx, 4)
		out = append(out, chunk...)
		if err != nil {
			require.True(t, errors.Is(err, io.EOF))
			break
		}
	}
	require.NoError(t, b.Close(ctx))
	return string(out)
}

func TestFileSystemLocal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local, err := NewFileSystemLocal("/tptp", mapFS(map[string]string{
		"Problems/SET001+1.p": "fof(a, axiom, p).",
		"Axioms/SET001-0.ax":  "cnf(b, axiom, q).",
		"Axioms/README":       "not tptp",
	}))
	require.NoError(t, err)

	files, err := local.Open(ctx, "Problems/SET001+1.p")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "/Problems/SET001+1.p", files[0].Path(ctx))
	require.Equal(t, source.FileKindProblem, files[0].Kind(ctx))
	require.Equal(t, "fof(a, axiom, p).", readAll(t, files[0]))

	files, err = local.Open(ctx, "Axioms")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, source.FileKindAxioms, files[0].Kind(ctx))

	_, err = local.Open(ctx, "Axioms/missing.ax")
	var e exc.Exception
	require.True(t, errors.As(err, &e))
	require.Equal(t, exc.CodeFileNotFound, e.Code())
}

func TestFileSystemMulti(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := NewFileSystemLocal("/one", mapFS(map[string]string{"a.p": "first"}))
	require.NoError(t, err)
	second, err := NewFileSystemLocal("/two", mapFS(map[string]string{"a.p": "second", "b.ax": "only"}))
	require.NoError(t, err)
	multi := FileSystemMulti{first, second}

	files, err := multi.Open(ctx, "/a.p")
	require.NoError(t, err)
	require.Equal(t, "first", readAll(t, files[0]))

	files, err = multi.Open(ctx, "/b.ax")
	require.NoError(t, err)
	require.Equal(t, "only", readAll(t, files[0]))

	_, err = multi.Open(ctx, "/c.p")
	var e exc.Exception
	require.True(t, errors.As(err, &e))
	require.Equal(t, exc.KindIO, e.Kind())
	require.Error(t, multi.Write(ctx, "/c.p", ""))
}

func TestFileString(t *testing.T) {
	t.Parallel()

	f := NewFileString("/mem.p", "cnf(c, axiom, p).", source.FileKindProblem)
	require.Equal(t, "cnf(c, axiom, p).", readAll(t, f))
	require.Equal(t, source.FileKindAxioms, KindOf("/x/y.ax"))
	require.Equal(t, source.FileKindProblem, KindOf("/x/y.txt"))
}
