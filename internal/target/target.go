// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package target turns command line targets and include names into the
// rooted paths the file systems expect.
package target

import (
	"net/url"
	"path/filepath"
)

// Normalize converts a compile target into a standard form.
//
// Targets may be any valid URI or file path. File paths and file URIs become
// rooted paths. All non-file URIs are left as-is with the expectation that
// they will be handled by some other FileSystem implementation.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		return filepath.Join("/", target)
	}
	return filepath.Clean(target)
}

// IncludeCandidates lists the paths tried, in order, for an include of name
// issued from a file in dir. Absolute names are used as given. Relative names
// are tried next to the including file and then against the file system roots.
func IncludeCandidates(dir string, name string) []string {
	if filepath.IsAbs(name) {
		return []string{filepath.Clean(name)}
	}
	local := filepath.Join("/", dir, name)
	root := filepath.Join("/", name)
	if local == root {
		return []string{root}
	}
	return []string{local, root}
}
