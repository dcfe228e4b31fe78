// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"
	"io"

	"gopkg.microglot.org/tptp.go/internal/compiler/tptp"
	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/kernel"
	"gopkg.microglot.org/tptp.go/internal/source"
)

type SubCompilerTPTP struct {
	Lexer         *tptp.LexerTPTP
	ParserOptions []tptp.Option
	FS            source.FileSystem
	TokenWriter   io.Writer
}

func (self *SubCompilerTPTP) CompileFile(ctx context.Context, r exc.Reporter, file source.File, dumpTokens bool) (*Problem, error) {
	if dumpTokens {
		if err := self.dumpTokens(ctx, r, file); err != nil {
			return nil, err
		}
	}
	options := make([]tptp.Option, 0, len(self.ParserOptions)+2)
	options = append(options, self.ParserOptions...)
	options = append(options, tptp.WithOptionLexer(self.Lexer), tptp.WithOptionFileSystem(self.FS))
	parser := tptp.NewParserTPTP(r, options...)
	sig := kernel.NewSignature()
	result, err := parser.Parse(ctx, file, sig)
	if err != nil {
		return nil, err
	}
	return &Problem{
		URI:       file.Path(ctx),
		Units:     result.Units,
		Signature: sig,
		Latex:     result.Latex,
		Overflow:  result.Overflow,
		TimedOut:  result.TimedOut,
	}, nil
}

// dumpTokens writes the token stream of file, one token per line. Included
// files are not followed.
func (self *SubCompilerTPTP) dumpTokens(ctx context.Context, r exc.Reporter, file source.File) error {
	lf, err := self.Lexer.Lex(ctx, file)
	if err != nil {
		return r.Report(exc.WrapUnknown(exc.Location{URI: file.Path(ctx)}, err))
	}
	stream, err := lf.Tokens(ctx)
	if err != nil {
		return r.Report(exc.WrapUnknown(exc.Location{URI: file.Path(ctx)}, err))
	}
	defer stream.Close(ctx)
	for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
		token := tok.Value()
		if token.Type == tptp.TokenTypeEOF {
			break
		}
		fmt.Fprintf(self.TokenWriter, "%-24s'%s'\n", token.Type, token.Value)
	}
	if e := stream.Err(); e != nil {
		return r.Report(e)
	}
	return nil
}
