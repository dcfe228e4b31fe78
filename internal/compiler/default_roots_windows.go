// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package compiler

import (
	"path/filepath"
)

// getDefaultRoots lists the per-user and machine-wide tptp directories.
func getDefaultRoots(lookup func(string) (string, bool)) []string {
	var roots []string
	if localAppData, ok := lookup("LOCALAPPDATA"); ok && localAppData != "" {
		roots = append(roots, filepath.Join(localAppData, "tptp"))
	}
	if programData, ok := lookup("ProgramData"); ok && programData != "" {
		roots = append(roots, filepath.Join(programData, "tptp"))
	}
	return roots
}
