// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build aix || darwin || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris

package compiler

import (
	"os"
	"path/filepath"
	"strings"
)

// getDefaultRoots lists the tptp directories under the XDG data home and
// data dirs, most specific first.
func getDefaultRoots(lookup func(string) (string, bool)) []string {
	expand := func(p string) string {
		return os.Expand(p, func(s string) string {
			v, _ := lookup(s)
			return v
		})
	}
	var roots []string
	dataHome, ok := lookup("XDG_DATA_HOME")
	if !ok {
		dataHome = "$HOME/.local/share"
	}
	if home := expand(dataHome); home != "" && home != "/.local/share" {
		roots = append(roots, filepath.Join(home, "tptp"))
	}
	xdgDirs, ok := lookup("XDG_DATA_DIRS")
	if !ok {
		xdgDirs = "/usr/local/share/:/usr/share/"
	}
	for _, dataDir := range strings.Split(xdgDirs, ":") {
		if dataDir == "" {
			continue
		}
		roots = append(roots, filepath.Join(expand(dataDir), "tptp"))
	}
	return roots
}
