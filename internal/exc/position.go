// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"github.com/bufbuild/protocompile/ast"
	pcreporter "github.com/bufbuild/protocompile/reporter"

	"gopkg.microglot.org/tptp.go/internal/source"
)

// ToErrorWithPos renders an exception as a protocompile positioned error so
// that diagnostics print as file:line:col like every other tool that consumes
// them.
func ToErrorWithPos(e Exception) pcreporter.ErrorWithPos {
	loc := e.Location()
	return pcreporter.Error(ast.SourcePos{
		Filename: loc.URI,
		Line:     int(loc.Line),
		Col:      int(loc.Column),
		Offset:   int(loc.Offset),
	}, &described{e})
}

// FromErrorWithPos is the inverse of ToErrorWithPos. Errors that did not come
// from this package are given the supplied code.
func FromErrorWithPos(err pcreporter.ErrorWithPos, code string) Exception {
	pos := err.GetPosition()
	loc := Location{
		URI: pos.Filename,
		Location: source.Location{
			Line:   int32(pos.Line),
			Column: int32(pos.Col),
			Offset: int64(pos.Offset),
		},
	}
	if d, ok := err.Unwrap().(*described); ok {
		return Wrap(loc, d.e.Code(), d.e)
	}
	return Wrap(loc, code, err.Unwrap())
}

// Handle sends each exception through a protocompile handler and returns the
// handler's final error state, which is reporter.ErrInvalidSource when the
// reporter accepted every exception.
func Handle(h *pcreporter.Handler, es []Exception) error {
	for _, e := range es {
		if err := h.HandleError(ToErrorWithPos(e)); err != nil {
			return err
		}
	}
	return h.Error()
}

type described struct {
	e Exception
}

func (d *described) Error() string {
	if t := d.e.Token(); t != "" {
		return fmt.Sprintf("%s %s: %s (at %q)", d.e.Kind(), d.e.Code(), d.e.Message(), t)
	}
	return fmt.Sprintf("%s %s: %s", d.e.Kind(), d.e.Code(), d.e.Message())
}

func (d *described) Unwrap() error {
	return d.e
}
