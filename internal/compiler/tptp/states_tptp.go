// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// state is one entry of the parser's control stack. Each state carries the
// data it needs when it runs; states that complete a construct started
// earlier hold that construct's pending record.
type state interface {
	isState()
}

// Top level.
type stUnitList struct{}

type stEndUnit struct {
	unit *pendingUnit
}

type stEndTypeDecl struct {
	name   *Token
	parens int
}

// Formulas.
type stFormula struct{}

type stSimpleFormula struct{}

// stEndFormula runs after each operand of a binary formula. ops are the
// connectives still waiting for their right operand, outermost first.
type stEndFormula struct {
	ops []pendingOp
}

type stNegate struct{}

type stQuantify struct {
	conn kernel.Connective
	vars []*kernel.Var
}

// stAtom runs after the first term of an atomic formula and decides between
// an equality and a predicate application.
type stAtom struct{}

type stEndEquality struct {
	positive bool
	tok      *Token
}

type stFormulaAsTerm struct{}

// Terms.
type stTerm struct{}

type stEndTerm struct{}

type stEndApp struct {
	app     *application
	formula bool
}

type stEndArg struct {
	closer TokenType
}

type stRestoreEquality struct {
	saved int
}

type stEndIte struct {
	tok *Token
}

type stEndTuple struct {
	tok  *Token
	base int
}

// Let.
type stLetType struct {
	let  *letExpr
	list bool
}

type stEndLetType struct {
	let  *letExpr
	name *Token
	list bool
}

type stDefinition struct {
	let  *letExpr
	list bool
}

type stEndDefinition struct {
	let  *letExpr
	def  *letDef
	list bool
}

type stEndLet struct {
	let *letExpr
}

// Types.
type stType struct{}

type stSimpleType struct{}

type stEndType struct {
	op typeOp
}

type stExpect struct {
	kind TokenType
}

func (stUnitList) isState()        {}
func (stEndUnit) isState()         {}
func (stEndTypeDecl) isState()     {}
func (stFormula) isState()         {}
func (stSimpleFormula) isState()   {}
func (stEndFormula) isState()      {}
func (stNegate) isState()          {}
func (stQuantify) isState()        {}
func (stAtom) isState()            {}
func (stEndEquality) isState()     {}
func (stFormulaAsTerm) isState()   {}
func (stTerm) isState()            {}
func (stEndTerm) isState()         {}
func (stEndApp) isState()          {}
func (stEndArg) isState()          {}
func (stRestoreEquality) isState() {}
func (stEndIte) isState()          {}
func (stEndTuple) isState()        {}
func (stLetType) isState()         {}
func (stEndLetType) isState()      {}
func (stDefinition) isState()      {}
func (stEndDefinition) isState()   {}
func (stEndLet) isState()          {}
func (stType) isState()            {}
func (stSimpleType) isState()      {}
func (stEndType) isState()         {}
func (stExpect) isState()          {}
