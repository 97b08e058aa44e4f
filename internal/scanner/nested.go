package scanner

import (
	"path/filepath"
	"strings"
)

// FilterNested keeps candidates whose path below root contains name exactly
// once, so only topmost matches survive. Input order is preserved.
func FilterNested(root, name string, candidates []string) []string {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if occurrences(root, name, c) == 1 {
			kept = append(kept, c)
		}
	}
	return kept
}

func occurrences(root, name, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0
	}
	n := 0
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part == name {
			n++
		}
	}
	return n
}
