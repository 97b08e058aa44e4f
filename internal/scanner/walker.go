// internal/scanner/walker.go
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/jackchuka/nmclean/internal/logger"
	"github.com/jackchuka/nmclean/internal/model"
)

// ErrScanRoot means the start path is missing, unreadable or not a directory.
var ErrScanRoot = errors.New("scan root unavailable")

// Walker finds directories named cfg.Name() beneath cfg.StartPath.
type Walker struct {
	cfg  model.SearchConfig
	log  logger.Logger
	root string
}

func NewWalker(cfg model.SearchConfig, log logger.Logger) *Walker {
	if log == nil {
		log = logger.Discard
	}
	return &Walker{cfg: cfg, log: log}
}

// Root returns the resolved absolute start path once Match has run.
func (w *Walker) Root() string {
	return w.root
}

// Match walks the tree and returns candidate paths in discovery order.
// A match is not descended into. Exclusion patterns are applied to the
// full candidate list before returning.
func (w *Walker) Match(ctx context.Context) ([]string, error) {
	root, err := resolveRoot(w.cfg.StartPath)
	if err != nil {
		return nil, err
	}
	w.root = root

	name := w.cfg.Name()
	maxDepth := w.cfg.MaxDepth
	var candidates []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %v", ErrScanRoot, err)
			}
			w.log.Warnf("cannot read %s: %v", path, err)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.IsDir() || path == root {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if d.Name() == name {
			// depth-1 directories sit between root and the match
			if maxDepth < 0 || depth-1 <= maxDepth {
				candidates = append(candidates, path)
			}
			return fs.SkipDir
		}

		if w.cfg.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}

		if maxDepth >= 0 && depth > maxDepth {
			return fs.SkipDir
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return applyExclusions(candidates, w.cfg.Exclude), nil
}

func resolveRoot(startPath string) (string, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScanRoot, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScanRoot, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScanRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrScanRoot, abs)
	}
	return resolved, nil
}

func applyExclusions(candidates, patterns []string) []string {
	if len(patterns) == 0 {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if !Excluded(patterns, c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Excluded reports whether path matches any wildcard pattern. Paths are
// compared with forward slashes so patterns are portable.
func Excluded(patterns []string, path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if wildcard.Match(pattern, slashed) {
			return true
		}
	}
	return false
}
