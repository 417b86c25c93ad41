// Package pathutil converts between OS paths and the slash-separated paths
// stored in an index.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// Clean converts an OS path to a cleaned slash-separated index path.
// The work tree root ("", "." or "/") becomes ".".
func Clean(name string) string {
	p := path.Clean(filepath.ToSlash(name))
	p = strings.TrimPrefix(p, "./")
	if p == "/" {
		return "."
	}
	return p
}

// DirPrefix converts a directory path to its prefix form.
// For ".", returns "" (empty prefix matches all).
// For other paths, appends "/" to match children.
func DirPrefix(name string) string {
	if name == "." || name == "" {
		return ""
	}
	return strings.TrimSuffix(name, "/") + "/"
}
