// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/compiler/tptp"
	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
	"gopkg.microglot.org/tptp.go/internal/source"
	"gopkg.microglot.org/tptp.go/internal/target"
)

type Option func(c *Compiler) error

func OptionWithFS(fs source.FileSystem) Option {
	return func(c *Compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *Compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *Compiler) error {
		c.Reporter = reporter
		return nil
	}
}

// OptionWithMaxConcurrency bounds the number of problems parsed at once.
func OptionWithMaxConcurrency(n int) Option {
	return func(c *Compiler) error {
		c.MaxConcurrency = n
		return nil
	}
}

// OptionWithParserOptions passes options to the parser of every problem.
// The file system option is always added last so that includes resolve
// against the compiler's file system.
func OptionWithParserOptions(options ...tptp.Option) Option {
	return func(c *Compiler) error {
		c.ParserOptions = append(c.ParserOptions, options...)
		return nil
	}
}

func OptionWithLexerOptions(options ...tptp.LexerOption) Option {
	return func(c *Compiler) error {
		c.LexerOptions = append(c.LexerOptions, options...)
		return nil
	}
}

// OptionWithTokenWriter sets where token dumps are written. The default is
// standard output.
func OptionWithTokenWriter(w io.Writer) Option {
	return func(c *Compiler) error {
		c.TokenWriter = w
		return nil
	}
}

func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.TokenWriter == nil {
		c.TokenWriter = os.Stdout
	}
	if c.SubCompilers == nil {
		sc := &SubCompilerTPTP{
			Lexer:         tptp.NewLexerTPTP(c.LexerOptions...),
			ParserOptions: c.ParserOptions,
			FS:            c.FS,
			TokenWriter:   c.TokenWriter,
		}
		c.SubCompilers = DefaultSubCompilers(sc)
	}
	return c, nil
}

// Compiler parses independent problems concurrently. Each problem gets its
// own signature; nothing is shared between them except the file system and
// the reporter.
type Compiler struct {
	LookupENV      func(string) (string, bool)
	FS             source.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	SubCompilers   map[source.FileKind]SubCompiler
	ParserOptions  []tptp.Option
	LexerOptions   []tptp.LexerOption
	TokenWriter    io.Writer
}

type CompileRequest struct {
	Files      []string
	DumpTokens bool
	// TimeLimit bounds the parse of each problem. Zero means no limit.
	TimeLimit time.Duration
}

// Problem is the parsed form of one input file.
type Problem struct {
	URI       string
	Units     []*kernel.Unit
	Signature *kernel.Signature
	Latex     []tptp.LatexTemplate
	Overflow  []string
	TimedOut  bool
}

type CompileResponse struct {
	// Problems are in the order their files were requested. Problems that
	// failed are left out.
	Problems []*Problem
}

func (self *Compiler) Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error) {
	targets := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		targets = append(targets, target.Normalize(f))
	}
	files := make([]source.File, 0, len(targets))
	for _, uri := range targets {
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			if e, ok := err.(exc.Exception); ok {
				_ = self.Reporter.Report(e)
				continue
			}
			_ = self.Reporter.Report(exc.Wrap(exc.Location{URI: uri}, exc.CodeFileNotFound, err))
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == source.FileKindNone {
				continue
			}
			files = append(files, inf)
		}
	}
	loaded := &sync.Map{}
	results := make(chan fileResult, len(files))
	expectedResults := len(files)

	for x, file := range files {
		go func(x int, file source.File) {
			problem, err := self.compileFile(ctx, file, loaded, req)
			results <- fileResult{index: x, problem: problem, err: err}
		}(x, file)
	}

	ordered := make([]*Problem, len(files))
	for x := 0; x < expectedResults; x = x + 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				if _, ok := result.err.(exc.Exception); !ok {
					return nil, result.err
				}
				continue
			}
			ordered[result.index] = result.problem
		}
	}

	out := &CompileResponse{}
	for _, p := range ordered {
		if p != nil {
			out.Problems = append(out.Problems, p)
		}
	}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return out, MultiException(caught)
	}
	return out, nil
}

func (self *Compiler) compileFile(ctx context.Context, file source.File, loaded *sync.Map, req *CompileRequest) (*Problem, error) {
	if err := self.Semaphore.Acquire(ctx); err != nil {
		return nil, err
	}
	defer self.Semaphore.Release()
	if _, ok := loaded.LoadOrStore(file.Path(ctx), true); ok {
		return nil, nil
	}
	sc := self.SubCompilers[file.Kind(ctx)]
	if sc == nil {
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "Unsupported file format")
		return nil, self.Reporter.Report(e)
	}
	if req.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.TimeLimit)
		defer cancel()
	}
	problem, err := sc.CompileFile(ctx, self.Reporter, file, req.DumpTokens)
	if err != nil {
		return nil, err
	}
	if problem.TimedOut {
		log.Infof("%s: time limit reached after %d units", problem.URI, len(problem.Units))
	}
	return problem, nil
}

type fileResult struct {
	index   int
	problem *Problem
	err     error
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
