// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

// Codes in the T00xx block come from below the lexical layer, T01xx codes are
// syntax errors and T02xx codes are semantic errors.
const (
	CodeUnknownFatal                   = "T0000"
	CodeFileNotFound                   = "T0001"
	CodeUnsupportedFileSystemOperation = "T0002"
	CodePermissionDenied               = "T0003"
	CodeUnsupportedFileFormat          = "T0004"

	CodeUnexpectedEOF       = "T0100"
	CodeUnexpectedToken     = "T0101"
	CodeInvalidNumber       = "T0102"
	CodeUnterminatedLiteral = "T0103"
	CodeUnrecognizedSymbol  = "T0104"
	CodeUnknownDirective    = "T0105"
	CodeUnknownRole         = "T0106"

	CodeSortMismatch         = "T0200"
	CodeDuplicateDeclaration = "T0201"
	CodeUnsupportedConstruct = "T0202"
	CodeArityMismatch        = "T0203"
	CodeUndeclaredSort       = "T0204"
	CodeUndeclaredSymbol     = "T0205"
	CodeMultipleConjectures  = "T0206"
	CodeNameCollision        = "T0207"
	CodeNotCNF               = "T0208"
	CodeUnsupportedRole      = "T0209"
	CodeInvalidOption        = "T0210"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)

// Kind separates failures by the layer that produced them.
type Kind uint8

const (
	KindInternal Kind = iota
	KindIO
	KindSyntax
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IOError"
	case KindSyntax:
		return "SyntaxError"
	case KindSemantic:
		return "SemanticError"
	default:
		return "InternalError"
	}
}

// KindOf classifies a code by its block.
func KindOf(code string) Kind {
	if len(code) != 5 || code[0] != 'T' {
		return KindInternal
	}
	switch code[1:3] {
	case "00":
		if code == CodeUnknownFatal {
			return KindInternal
		}
		return KindIO
	case "01":
		return KindSyntax
	case "02":
		return KindSemantic
	default:
		return KindInternal
	}
}
