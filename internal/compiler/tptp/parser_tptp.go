// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
	"gopkg.microglot.org/tptp.go/internal/source"
)

// OptionSetter receives the values of vampire(option, name, value)
// directives.
type OptionSetter interface {
	Set(name string, value string) error
}

// LatexTemplate is a rendering hint registered by a vampire(latex, ...)
// directive.
type LatexTemplate struct {
	Symbol   *kernel.Symbol
	Template string
	// Polarity selects the occurrences of a predicate the template is for.
	Polarity bool
}

// Result is everything one parse produced. When TimedOut is set the units are
// the ones completed before the deadline.
type Result struct {
	Units    []*kernel.Unit
	Latex    []LatexTemplate
	Overflow []string
	TimedOut bool
}

type Option func(*ParserTPTP)

// WithOptionFileSystem sets the file system that include directives are
// resolved against.
func WithOptionFileSystem(fs source.FileSystem) Option {
	return func(p *ParserTPTP) {
		p.fs = fs
	}
}

// WithOptionForbiddenIncludes names include targets that are parsed as
// directives but never opened.
func WithOptionForbiddenIncludes(names ...string) Option {
	return func(p *ParserTPTP) {
		for _, name := range names {
			p.forbidden[name] = true
		}
	}
}

func WithOptionDirectives(setter OptionSetter) Option {
	return func(p *ParserTPTP) {
		p.options = setter
	}
}

// WithOptionCollectSources keeps the source annotation of each unit.
func WithOptionCollectSources(enabled bool) Option {
	return func(p *ParserTPTP) {
		p.collectSources = enabled
	}
}

func WithOptionLexer(l *LexerTPTP) Option {
	return func(p *ParserTPTP) {
		p.lexer = l
	}
}

// ParserTPTP turns TPTP problems into units over a caller supplied
// signature. A ParserTPTP holds configuration only and may be shared; every
// call to Parse has its own state.
type ParserTPTP struct {
	reporter       exc.Reporter
	fs             source.FileSystem
	forbidden      map[string]bool
	options        OptionSetter
	collectSources bool
	lexer          *LexerTPTP
}

func NewParserTPTP(reporter exc.Reporter, options ...Option) *ParserTPTP {
	p := &ParserTPTP{
		reporter:  reporter,
		forbidden: make(map[string]bool),
		lexer:     NewLexerTPTP(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Parse reads the problem in f, following its includes, and elaborates it
// into sig. The first error aborts the parse; it is reported and returned.
func (self *ParserTPTP) Parse(ctx context.Context, f source.File, sig *kernel.Signature) (*Result, error) {
	p := self.newParser(ctx, sig)
	if err := p.parseFile(f); err != nil {
		if self.reporter != nil {
			_ = self.reporter.Report(err)
		}
		return nil, err
	}
	return p.result, nil
}

func (self *ParserTPTP) newParser(ctx context.Context, sig *kernel.Signature) *parser {
	return &parser{
		ctx:      ctx,
		config:   self,
		sig:      sig,
		sorts:    sig.Sorts(),
		scope:    newScope(),
		overflow: make(map[string]bool),
		result:   &Result{},
	}
}

// built is a value on the result stack: a term or a formula, promoted to
// the other as the consuming state requires.
type built struct {
	term    kernel.Term
	formula kernel.Formula
	tok     *Token
}

// parser is the state of one Parse call: a control stack of states run by a
// single loop, the stacks of built terms, formulas and types, and the stack
// of open files.
type parser struct {
	ctx     context.Context
	config  *ParserTPTP
	sig     *kernel.Signature
	sorts   *kernel.Sorts
	scope   *scope
	cursors []*cursor
	states  []state
	built   []built
	types   []*typeExpr
	// eqArgs counts the equality sides being read. Inside one a binary
	// connective ends the term instead of starting a formula.
	eqArgs          int
	typed           bool
	color           kernel.Color
	modelDefinition bool
	seenConjecture  bool
	overflow        map[string]bool
	result          *Result
}

func (p *parser) parseFile(f source.File) exc.Exception {
	uri := f.Path(p.ctx)
	if err := p.open(f, nil); err != nil {
		return exc.Wrap(exc.Location{URI: uri}, codeOf(err, exc.CodeFileNotFound), err)
	}
	log.Debugf("parsing %s", uri)
	if err := p.run(); err != nil {
		p.abort()
		return err
	}
	log.Debugf("parsed %s: %d units", uri, len(p.result.Units))
	return nil
}

// open starts reading f. The new cursor becomes the active one.
func (p *parser) open(f source.File, allowed map[string]bool) error {
	lf, err := p.config.lexer.Lex(p.ctx, f)
	if err != nil {
		return err
	}
	stream, err := lf.Tokens(p.ctx)
	if err != nil {
		return err
	}
	p.cursors = append(p.cursors, newCursor(p.ctx, f.Path(p.ctx), stream, allowed))
	return nil
}

func (p *parser) run() exc.Exception {
	p.push(stUnitList{})
	for len(p.states) > 0 {
		s := p.states[len(p.states)-1]
		p.states = p.states[:len(p.states)-1]
		if err := p.step(s); err != nil {
			return err
		}
	}
	return p.closeAll()
}

func (p *parser) step(s state) exc.Exception {
	switch s := s.(type) {
	case stUnitList:
		return p.unitList()
	case stEndUnit:
		return p.endUnit(s)
	case stEndTypeDecl:
		return p.endTypeDecl(s)
	case stFormula:
		return p.formula()
	case stSimpleFormula:
		return p.simpleFormula()
	case stEndFormula:
		return p.endFormula(s)
	case stNegate:
		return p.negate()
	case stQuantify:
		return p.quantify(s)
	case stAtom:
		return p.atom()
	case stEndEquality:
		return p.endEquality(s)
	case stFormulaAsTerm:
		return p.formulaAsTerm()
	case stTerm:
		return p.term()
	case stEndTerm:
		return p.endTerm()
	case stEndApp:
		return p.endApp(s)
	case stEndArg:
		return p.endArg(s)
	case stRestoreEquality:
		p.eqArgs = s.saved
		return nil
	case stEndIte:
		return p.endIte(s)
	case stEndTuple:
		return p.endTuple(s)
	case stLetType:
		return p.letType(s)
	case stEndLetType:
		return p.endLetType(s)
	case stDefinition:
		return p.definition(s)
	case stEndDefinition:
		return p.endDefinition(s)
	case stEndLet:
		return p.endLet(s)
	case stType:
		return p.typeExpr()
	case stSimpleType:
		return p.simpleType()
	case stEndType:
		return p.endType(s)
	case stExpect:
		_, err := p.cur().expect(s.kind)
		return err
	default:
		panic(fmt.Sprintf("tptp: unknown parser state %T", s))
	}
}

// abort releases everything the pending states hold: open variable and let
// frames and open files.
func (p *parser) abort() {
	for x := len(p.states) - 1; x >= 0; x = x - 1 {
		switch p.states[x].(type) {
		case stQuantify, stEndDefinition:
			p.scope.popFrame()
		case stEndLet:
			p.scope.popLetFrame()
		}
	}
	p.states = nil
	p.built = nil
	p.types = nil
	p.eqArgs = 0
	_ = p.closeAll()
}

func (p *parser) closeAll() exc.Exception {
	var first exc.Exception
	for x := len(p.cursors) - 1; x >= 0; x = x - 1 {
		c := p.cursors[x]
		if err := c.close(); err != nil && first == nil {
			first = exc.WrapUnknown(exc.Location{URI: c.uri}, err)
		}
	}
	p.cursors = nil
	return first
}

func (p *parser) cur() *cursor {
	return p.cursors[len(p.cursors)-1]
}

func (p *parser) push(states ...state) {
	p.states = append(p.states, states...)
}

func (p *parser) pushTerm(t kernel.Term, tok *Token) {
	p.built = append(p.built, built{term: t, tok: tok})
}

func (p *parser) pushFormula(f kernel.Formula, tok *Token) {
	p.built = append(p.built, built{formula: f, tok: tok})
}

func (p *parser) pop() built {
	if len(p.built) == 0 {
		panic("tptp: result stack underflow")
	}
	b := p.built[len(p.built)-1]
	p.built = p.built[:len(p.built)-1]
	return b
}

// popN removes the top n results, oldest first.
func (p *parser) popN(n int) []built {
	if len(p.built) < n {
		panic("tptp: result stack underflow")
	}
	out := make([]built, n)
	copy(out, p.built[len(p.built)-n:])
	p.built = p.built[:len(p.built)-n]
	return out
}

func (p *parser) asTerm(b built) kernel.Term {
	if b.term != nil {
		return b.term
	}
	return kernel.NewFormulaTerm(b.formula)
}

// asFormula uses b as a formula. Terms qualify only when they are boolean.
func (p *parser) asFormula(b built) (kernel.Formula, exc.Exception) {
	if b.formula != nil {
		return b.formula, nil
	}
	if b.term.Sort() != kernel.SortBool {
		return nil, p.errorf(b.tok, exc.CodeSortMismatch, "formula expected but %s has sort %s", b.term, p.sorts.Name(b.term.Sort()))
	}
	return kernel.NewBoolTerm(b.term), nil
}

func (p *parser) errorf(tok *Token, code string, format string, args ...any) exc.Exception {
	return p.cur().fail(tok, code, fmt.Sprintf(format, args...))
}

// codeOf returns the code of err when it is an exception and fallback
// otherwise.
func codeOf(err error, fallback string) string {
	if e, ok := err.(exc.Exception); ok {
		return e.Code()
	}
	return fallback
}
