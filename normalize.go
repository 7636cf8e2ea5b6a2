package anew

import (
	"path/filepath"
	"strings"
)

// Normalize maps every source path to a template-relative path.
//
// If all sources live under currentDir the working directory is stripped.
// Otherwise the greatest common ancestor of the whole set is stripped; the
// choice is made once for the batch, never per path. The result keeps the
// length and order of sources.
func Normalize(currentDir string, sources []string) ([]string, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyFileSet
	}

	if rel, ok := stripAll(currentDir, sources); ok {
		return rel, nil
	}

	gca := GreatestCommonAncestor(sources)
	rel, ok := stripAll(gca, sources)
	if gca == "" || !ok {
		return nil, ErrNoCommonAncestor
	}
	return rel, nil
}

// GreatestCommonAncestor walks the ancestors of the first path, most specific
// first, and returns the first one that prefixes every path.
func GreatestCommonAncestor(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	for _, ancestor := range Ancestors(paths[0]) {
		if _, ok := stripAll(ancestor, paths); ok {
			return ancestor
		}
	}
	return ""
}

// Ancestors returns path followed by each of its parents up to the root.
func Ancestors(path string) []string {
	path = filepath.Clean(path)
	out := []string{path}
	for {
		parent := filepath.Dir(path)
		if parent == path {
			return out
		}
		out = append(out, parent)
		path = parent
	}
}

func stripAll(prefix string, paths []string) ([]string, bool) {
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, ok := stripPrefix(p, prefix)
		if !ok {
			return nil, false
		}
		out[i] = rel
	}
	return out, true
}

// stripPrefix removes prefix from path on whole path components only, so
// /a/bc is not under /a/b. A path equal to prefix becomes ".".
func stripPrefix(path, prefix string) (string, bool) {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if path == prefix {
		return ".", true
	}

	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
