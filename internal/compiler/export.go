// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"gopkg.microglot.org/tptp.go/internal/kernel"
)

// ExportProblems renders parsed problems as a protobuf Struct with a single
// "problems" list. Interpreted symbols and numeric or string constants are
// left out of the symbol lists.
func ExportProblems(problems []*Problem) (*structpb.Struct, error) {
	list := make([]any, 0, len(problems))
	for _, p := range problems {
		list = append(list, exportProblem(p))
	}
	return structpb.NewStruct(map[string]any{"problems": list})
}

// MarshalProblemsJSON is ExportProblems encoded with protojson.
func MarshalProblemsJSON(problems []*Problem) ([]byte, error) {
	s, err := ExportProblems(problems)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

func exportProblem(p *Problem) map[string]any {
	units := make([]any, 0, len(p.Units))
	for _, u := range p.Units {
		units = append(units, exportUnit(u))
	}
	out := map[string]any{
		"uri":       p.URI,
		"timed_out": p.TimedOut,
		"units":     units,
		"overflow":  stringList(p.Overflow),
	}
	if p.Signature == nil {
		return out
	}
	sorts := p.Signature.Sorts()
	names := make([]any, 0, sorts.Count())
	for x := 0; x < sorts.Count(); x = x + 1 {
		names = append(names, sorts.Name(kernel.SortID(x)))
	}
	out["sorts"] = names
	var symbols []any
	for _, group := range [][]*kernel.Symbol{p.Signature.Functions(), p.Signature.Predicates()} {
		for _, sym := range group {
			if sym.Interpreted || sym.Number != nil || sym.StringConstant {
				continue
			}
			symbols = append(symbols, exportSymbol(sorts, sym))
		}
	}
	out["symbols"] = symbols
	latex := make([]any, 0, len(p.Latex))
	for _, l := range p.Latex {
		latex = append(latex, map[string]any{
			"symbol":   l.Symbol.Name,
			"template": l.Template,
			"polarity": l.Polarity,
		})
	}
	out["latex"] = latex
	return out
}

func exportUnit(u *kernel.Unit) map[string]any {
	out := map[string]any{
		"name":      u.Name,
		"role":      u.Role.String(),
		"included":  u.Included,
		"color":     u.Color.String(),
		"inference": u.Inference.String(),
	}
	if u.IsClause() {
		out["clause"] = u.Clause.String()
	} else {
		out["formula"] = u.Formula.String()
	}
	if u.Question {
		out["question"] = true
	}
	if u.Source != nil {
		out["source"] = map[string]any{
			"kind": u.Source.Kind,
			"args": stringList(u.Source.Args),
		}
	}
	if u.Parent != nil {
		out["parent"] = exportUnit(u.Parent)
	}
	return out
}

func exportSymbol(sorts *kernel.Sorts, sym *kernel.Symbol) map[string]any {
	out := map[string]any{
		"name":      sym.Name,
		"arity":     sym.Arity(),
		"predicate": sym.Predicate,
		"type":      sorts.TypeString(sym.Type),
	}
	flags := map[string]bool{
		"overflow": sym.Overflow,
		"fresh":    sym.Fresh,
		"label":    sym.Label,
		"skip":     sym.Skip,
	}
	for k, v := range flags {
		if v {
			out[k] = true
		}
	}
	if sym.Color != kernel.ColorTransparent {
		out["color"] = sym.Color.String()
	}
	return out
}

func stringList(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
