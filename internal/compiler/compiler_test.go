// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"runtime"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/tptp.go/internal/compiler/tptp"
	"gopkg.microglot.org/tptp.go/internal/config"
	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/fs"
	"gopkg.microglot.org/tptp.go/internal/source"
)

func memoryFS(t *testing.T, files map[string]string) source.FileSystem {
	t.Helper()
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	local, err := fs.NewFileSystemLocal("/", fs.WithOptionFSFactory(func(string) iofs.FS { return m }))
	require.NoError(t, err)
	return local
}

func noEnv(string) (string, bool) {
	return "", false
}

var library = map[string]string{
	"Axioms/SET001-0.ax":  "fof(member, axiom, ![X] : (member(X, s) => member(X, t))).",
	"Problems/SET001+1.p": "include('Axioms/SET001-0.ax').\nfof(goal, conjecture, member(a, t)).",
	"Problems/ARI001+1.p": "tff(sum, axiom, $sum(1, 2) = 3).\nvampire(option, age_weight_ratio, 5).",
	"Problems/BAD001+1.p": "fof(broken, axiom, p & ).",
}

func TestCompile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	options := config.NewOptions(nil)
	c, err := New(
		OptionWithLookupEnv(noEnv),
		OptionWithFS(memoryFS(t, library)),
		OptionWithMaxConcurrency(2),
		OptionWithParserOptions(tptp.WithOptionDirectives(options)),
	)
	require.NoError(t, err)

	out, err := c.Compile(ctx, &CompileRequest{
		Files: []string{"Problems/SET001+1.p", "file:///Problems/ARI001+1.p", "/Problems/SET001+1.p"},
	})
	require.NoError(t, err)
	require.Len(t, out.Problems, 2)

	set := out.Problems[0]
	require.Equal(t, "/Problems/SET001+1.p", set.URI)
	require.Len(t, set.Units, 2)
	require.True(t, set.Units[0].Included)
	require.Equal(t, "~member(a,t)", set.Units[1].Formula.String())

	ari := out.Problems[1]
	require.Equal(t, "/Problems/ARI001+1.p", ari.URI)
	require.Equal(t, "$sum(1,2) = 3", ari.Units[0].Formula.String())
	v, ok := options.Get("age_weight_ratio")
	require.True(t, ok)
	require.Equal(t, "5", v)

	_, ok = set.Signature.Predicate("member", 2)
	require.True(t, ok)
	_, ok = ari.Signature.Predicate("member", 2)
	require.False(t, ok)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reporter := exc.NewReporter(nil)
	c, err := New(
		OptionWithLookupEnv(noEnv),
		OptionWithFS(memoryFS(t, library)),
		OptionWithExcReporter(reporter),
	)
	require.NoError(t, err)

	out, err := c.Compile(ctx, &CompileRequest{
		Files: []string{"Problems/BAD001+1.p", "Problems/MISSING.p", "Problems/ARI001+1.p"},
	})
	require.Error(t, err)
	var me MultiException
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 2)
	codes := []string{me[0].Code(), me[1].Code()}
	require.ElementsMatch(t, []string{exc.CodeUnexpectedToken, exc.CodeFileNotFound}, codes)
	require.Len(t, out.Problems, 1)
	require.Equal(t, "/Problems/ARI001+1.p", out.Problems[0].URI)
}

// TestCompileCancelled counts goroutines so it does not run in parallel.
func TestCompileCancelled(t *testing.T) {
	files := map[string]string{}
	targets := make([]string, 0, 16)
	for x := 0; x < 16; x = x + 1 {
		name := "Problems/P" + string(rune('a'+x)) + ".p"
		files[name] = "fof(a, axiom, p)."
		targets = append(targets, name)
	}
	c, err := New(
		OptionWithLookupEnv(noEnv),
		OptionWithFS(memoryFS(t, files)),
		OptionWithMaxConcurrency(1),
	)
	require.NoError(t, err)

	before := runtime.NumGoroutine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Compile(ctx, &CompileRequest{Files: targets})
	require.ErrorIs(t, err, context.Canceled)
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCompileDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, err := New(
		OptionWithLookupEnv(noEnv),
		OptionWithFS(memoryFS(t, map[string]string{
			"Problems/A.p": "fof(a, axiom, p).",
			"Problems/B.p": "fof(b, axiom, q).",
		})),
	)
	require.NoError(t, err)
	out, err := c.Compile(ctx, &CompileRequest{Files: []string{"Problems"}})
	require.NoError(t, err)
	require.Len(t, out.Problems, 2)
	require.Equal(t, "/Problems/A.p", out.Problems[0].URI)
	require.Equal(t, "/Problems/B.p", out.Problems[1].URI)
}

func TestCompileDumpTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var dump bytes.Buffer
	c, err := New(
		OptionWithLookupEnv(noEnv),
		OptionWithFS(memoryFS(t, map[string]string{"Problems/A.p": "fof(a, axiom, p)."})),
		OptionWithTokenWriter(&dump),
	)
	require.NoError(t, err)
	out, err := c.Compile(ctx, &CompileRequest{Files: []string{"Problems/A.p"}, DumpTokens: true})
	require.NoError(t, err)
	require.Len(t, out.Problems, 1)
	lines := bytes.Split(bytes.TrimSpace(dump.Bytes()), []byte("\n"))
	require.Len(t, lines, 9)
	require.Equal(t, "name                    'fof'", string(lines[0]))
}

func TestDefaultRoots(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"TPTP":          "/opt/TPTP",
		"XDG_DATA_HOME": "/home/u/.local/share",
		"XDG_DATA_DIRS": "/usr/share",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	f, err := NewDefaultFS(lookup)
	require.NoError(t, err)
	multi, ok := f.(fs.FileSystemMulti)
	require.True(t, ok)
	require.Len(t, multi, len(getDefaultRoots(lookup))+1)
}
