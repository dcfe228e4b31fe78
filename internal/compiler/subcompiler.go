// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/source"
)

// SubCompiler turns one file into a problem. Failures are reported to r and
// returned.
type SubCompiler interface {
	CompileFile(ctx context.Context, r exc.Reporter, file source.File, dumpTokens bool) (*Problem, error)
}

// DefaultSubCompilers maps both problem and axiom files to the TPTP
// sub-compiler. Axiom files are usually reached through include but may also
// be parsed on their own.
func DefaultSubCompilers(sc *SubCompilerTPTP) map[source.FileKind]SubCompiler {
	return map[source.FileKind]SubCompiler{
		source.FileKindProblem: sc,
		source.FileKindAxioms:  sc,
	}
}
