package walker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	".doxynav",
	"node_modules",
	"managed_components",
	".idea",
	".vscode",
}

// DoxygenOutputs are the non-HTML output directories Doxygen writes next to
// html/. They are skipped only when an html/ sibling exists.
var DoxygenOutputs = []string{"latex", "xml", "man", "rtf", "docbook"}

// skipDir reports whether the walk should not descend into the directory at
// path.
func skipDir(path string) bool {
	name := filepath.Base(path)
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}

	parent := filepath.Dir(path)
	// html/search holds the search index scripts, never navigation data.
	if name == "search" && filepath.Base(parent) == "html" {
		return true
	}
	for _, out := range DoxygenOutputs {
		if name == out {
			fi, err := os.Stat(filepath.Join(parent, "html"))
			return err == nil && fi.IsDir()
		}
	}
	return false
}

// Selected reports whether relPath is matched by include and not by exclude.
// An empty include list selects files named navtreedata.js.
func Selected(relPath string, include, exclude []string) bool {
	if len(include) == 0 {
		if filepath.Base(relPath) != "navtreedata.js" {
			return false
		}
	} else if !matchesAny(relPath, include) {
		return false
	}
	return !matchesAny(relPath, exclude)
}

// matchesAny checks relPath, then its base name, against each doublestar
// pattern.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
