// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"path/filepath"

	"gopkg.microglot.org/tptp.go/internal/fs"
	"gopkg.microglot.org/tptp.go/internal/source"
)

// NewDefaultFS builds the include search path from the environment. The
// TPTP variable, when set, names the root of a TPTP library and comes first.
func NewDefaultFS(lookup func(string) (string, bool)) (source.FileSystem, error) {
	roots := getDefaultRoots(lookup)
	if tptpRoot, ok := lookup("TPTP"); ok && tptpRoot != "" {
		roots = append([]string{tptpRoot}, roots...)
	}
	return NewRootsFS(roots...)
}

// NewRootsFS searches the given directories in order.
func NewRootsFS(roots ...string) (fs.FileSystemMulti, error) {
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			return nil, errAbs
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}
