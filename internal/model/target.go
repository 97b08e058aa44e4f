package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTargetName is the dependency-cache directory name scanned for by default.
const DefaultTargetName = "node_modules"

// Target is one topmost dependency-cache directory found by a scan.
type Target struct {
	Path         string    // Absolute path, unique per scan
	Size         int64     // Sum of regular file sizes beneath Path
	LastModified time.Time // mtime of the directory itself, not its contents
	Unused       bool      // LastModified predates one calendar month before the scan
}

// Name returns the name of the project directory that owns the target.
func (t Target) Name() string {
	return filepath.Base(filepath.Dir(t.Path))
}

func TotalSize(targets []Target) int64 {
	var total int64
	for _, t := range targets {
		total += t.Size
	}
	return total
}

func CountUnused(targets []Target) int {
	n := 0
	for _, t := range targets {
		if t.Unused {
			n++
		}
	}
	return n
}

func Paths(targets []Target) []string {
	paths := make([]string, len(targets))
	for i, t := range targets {
		paths[i] = t.Path
	}
	return paths
}

// SearchConfig describes one scan pass.
type SearchConfig struct {
	StartPath  string
	MaxDepth   int      // -1 for unbounded
	Exclude    []string // wildcard deny-list, applied before nested filtering
	TargetName string
	SkipHidden bool // do not descend into dot-directories
}

func (c SearchConfig) Validate() error {
	if c.StartPath == "" {
		return errors.New("start path is empty")
	}
	if c.MaxDepth < -1 {
		return fmt.Errorf("max depth %d is invalid (use -1 for unbounded)", c.MaxDepth)
	}
	return nil
}

// Name returns TargetName, falling back to DefaultTargetName.
func (c SearchConfig) Name() string {
	if c.TargetName == "" {
		return DefaultTargetName
	}
	return c.TargetName
}

type RemovalMode int

const (
	ModeInteractive RemovalMode = iota
	ModeAll
	ModeUnused
)

func (m RemovalMode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeUnused:
		return "unused"
	case ModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// ParseRemovalMode accepts all, unused or interactive (case-insensitive).
func ParseRemovalMode(s string) (RemovalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ModeAll, nil
	case "unused":
		return ModeUnused, nil
	case "interactive", "":
		return ModeInteractive, nil
	default:
		return ModeInteractive, fmt.Errorf("unknown removal mode %q (want all, unused or interactive)", s)
	}
}

type RemovalOptions struct {
	Search SearchConfig
	Mode   RemovalMode
	DryRun bool
	Backup bool
}
