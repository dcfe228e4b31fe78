// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"fmt"

	"gopkg.microglot.org/tptp.go/internal/source"
)

type Token struct {
	Span  *source.Span
	Type  TokenType
	Value string
}

func (t *Token) String() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return t.Value
}

type TokenType uint16

const (
	TokenTypeEOF TokenType = iota
	// TokenTypeError is emitted once when the lexer fails. The failure itself
	// is available from the token stream.
	TokenTypeError
	TokenTypeName
	TokenTypeVariable
	TokenTypeInteger
	TokenTypeRational
	TokenTypeReal
	TokenTypeString
	TokenTypeDollarDollar
	TokenTypeLeftParen
	TokenTypeRightParen
	TokenTypeLeftBracket
	TokenTypeRightBracket
	TokenTypeComma
	TokenTypeColon
	TokenTypeDot
	TokenTypeNot
	TokenTypeAnd
	TokenTypeOr
	TokenTypeNotAnd
	TokenTypeNotOr
	TokenTypeEqual
	TokenTypeNotEqual
	TokenTypeImply
	TokenTypeReverseImply
	TokenTypeIff
	TokenTypeXor
	TokenTypeForall
	TokenTypeExists
	TokenTypePi
	TokenTypeSigma
	TokenTypeForallType
	TokenTypeExistsType
	TokenTypeAssign
	TokenTypeLambda
	TokenTypeApply
	TokenTypeApplyPlus
	TokenTypeApplyMinus
	TokenTypeStar
	TokenTypePlus
	TokenTypeArrow
	TokenTypeSubtype
	TokenTypeSequent
	TokenTypeTrue
	TokenTypeFalse
	TokenTypeTType
	TokenTypeBoolType
	TokenTypeDefaultType
	TokenTypeIntType
	TokenTypeRatType
	TokenTypeRealType
	TokenTypeTupleType
	TokenTypeIte
	TokenTypeLet
	TokenTypeTheorySort
	TokenTypeTheoryFunction
	TokenTypeFOT
	TokenTypeFOF
	TokenTypeTFF
	TokenTypeTHF
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeEOF:            "end of file",
	TokenTypeError:          "invalid input",
	TokenTypeName:           "name",
	TokenTypeVariable:       "variable",
	TokenTypeInteger:        "integer",
	TokenTypeRational:       "rational",
	TokenTypeReal:           "real",
	TokenTypeString:         "string",
	TokenTypeDollarDollar:   "$$name",
	TokenTypeLeftParen:      "(",
	TokenTypeRightParen:     ")",
	TokenTypeLeftBracket:    "[",
	TokenTypeRightBracket:   "]",
	TokenTypeComma:          ",",
	TokenTypeColon:          ":",
	TokenTypeDot:            ".",
	TokenTypeNot:            "~",
	TokenTypeAnd:            "&",
	TokenTypeOr:             "|",
	TokenTypeNotAnd:         "~&",
	TokenTypeNotOr:          "~|",
	TokenTypeEqual:          "=",
	TokenTypeNotEqual:       "!=",
	TokenTypeImply:          "=>",
	TokenTypeReverseImply:   "<=",
	TokenTypeIff:            "<=>",
	TokenTypeXor:            "<~>",
	TokenTypeForall:         "!",
	TokenTypeExists:         "?",
	TokenTypePi:             "??",
	TokenTypeSigma:          "!!",
	TokenTypeForallType:     "!>",
	TokenTypeExistsType:     "?*",
	TokenTypeAssign:         ":=",
	TokenTypeLambda:         "^",
	TokenTypeApply:          "@",
	TokenTypeApplyPlus:      "@+",
	TokenTypeApplyMinus:     "@-",
	TokenTypeStar:           "*",
	TokenTypePlus:           "+",
	TokenTypeArrow:          ">",
	TokenTypeSubtype:        "<<",
	TokenTypeSequent:        "-->",
	TokenTypeTrue:           "$true",
	TokenTypeFalse:          "$false",
	TokenTypeTType:          "$tType",
	TokenTypeBoolType:       "$o",
	TokenTypeDefaultType:    "$i",
	TokenTypeIntType:        "$int",
	TokenTypeRatType:        "$rat",
	TokenTypeRealType:       "$real",
	TokenTypeTupleType:      "$tuple",
	TokenTypeIte:            "$ite",
	TokenTypeLet:            "$let",
	TokenTypeTheorySort:     "theory sort",
	TokenTypeTheoryFunction: "theory function",
	TokenTypeFOT:            "$fot",
	TokenTypeFOF:            "$fof",
	TokenTypeTFF:            "$tff",
	TokenTypeTHF:            "$thf",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", uint16(t))
}

// reservedWords maps dollar words to their token types. Words not listed
// here lex as names.
var reservedWords = map[string]TokenType{
	"$true":    TokenTypeTrue,
	"$false":   TokenTypeFalse,
	"$tType":   TokenTypeTType,
	"$o":       TokenTypeBoolType,
	"$oType":   TokenTypeBoolType,
	"$i":       TokenTypeDefaultType,
	"$iType":   TokenTypeDefaultType,
	"$int":     TokenTypeIntType,
	"$rat":     TokenTypeRatType,
	"$real":    TokenTypeRealType,
	"$tuple":   TokenTypeTupleType,
	"$ite":     TokenTypeIte,
	"$ite_t":   TokenTypeIte,
	"$ite_f":   TokenTypeIte,
	"$let":     TokenTypeLet,
	"$let_tt":  TokenTypeLet,
	"$let_tf":  TokenTypeLet,
	"$let_ft":  TokenTypeLet,
	"$let_ff":  TokenTypeLet,
	"$array":   TokenTypeTheorySort,
	"$select":  TokenTypeTheoryFunction,
	"$store":   TokenTypeTheoryFunction,
	"$fot":     TokenTypeFOT,
	"$fof":     TokenTypeFOF,
	"$tff":     TokenTypeTFF,
	"$thf":     TokenTypeTHF,
}

func newToken(start source.Location, end source.Location, kind TokenType, value string) *Token {
	return &Token{
		Span: &source.Span{
			Start: &start,
			End:   &end,
		},
		Type:  kind,
		Value: value,
	}
}
