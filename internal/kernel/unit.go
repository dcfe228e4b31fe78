// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"fmt"
	"strings"
)

type Role uint8

const (
	RoleAxiom Role = iota
	RoleHypothesis
	RoleAssumption
	RoleExtensionalityAxiom
	RoleConjecture
	RoleNegatedConjecture
	RoleClaim
	RoleModelDefinition
)

func (r Role) String() string {
	switch r {
	case RoleHypothesis:
		return "hypothesis"
	case RoleAssumption:
		return "assumption"
	case RoleExtensionalityAxiom:
		return "extensionality"
	case RoleConjecture:
		return "conjecture"
	case RoleNegatedConjecture:
		return "negated_conjecture"
	case RoleClaim:
		return "claim"
	case RoleModelDefinition:
		return "model_definition"
	default:
		return "axiom"
	}
}

// Inference records how a unit was derived from its input.
type Inference uint8

const (
	InferenceInput Inference = iota
	InferenceNegatedConjecture
	InferenceClaimDefinition
)

func (i Inference) String() string {
	switch i {
	case InferenceNegatedConjecture:
		return "negated_conjecture"
	case InferenceClaimDefinition:
		return "claim_definition"
	default:
		return "input"
	}
}

// Clause is a disjunction of literals. The empty clause is false.
type Clause struct {
	Literals []*Literal
}

func (c *Clause) String() string {
	if len(c.Literals) == 0 {
		return "$false"
	}
	parts := make([]string, 0, len(c.Literals))
	for _, l := range c.Literals {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, " | ")
}

// Source is the annotation that followed a unit in the input: its functor,
// such as file or inference, and the text of each argument.
type Source struct {
	Kind string
	Args []string
}

func (s *Source) String() string {
	return fmt.Sprintf("%s(%s)", s.Kind, strings.Join(s.Args, ","))
}

// Unit is one parsed input unit. Exactly one of Formula and Clause is set.
type Unit struct {
	Name      string
	Role      Role
	Formula   Formula
	Clause    *Clause
	Question  bool
	Included  bool
	Color     Color
	Source    *Source
	Inference Inference
	// Parent is the unit as written when Inference is not input.
	Parent *Unit
}

func (u *Unit) IsClause() bool {
	return u.Clause != nil
}

func (u *Unit) String() string {
	if u.IsClause() {
		return fmt.Sprintf("cnf(%s, %s, %s).", u.Name, u.Role, u.Clause)
	}
	return fmt.Sprintf("fof(%s, %s, %s).", u.Name, u.Role, u.Formula)
}
