// internal/scanner/scanner.go
package scanner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackchuka/nmclean/internal/logger"
	"github.com/jackchuka/nmclean/internal/model"
)

// Scanner produces the Target list for one scan pass:
// Walker.Match, FilterNested, then size and staleness per candidate.
type Scanner struct {
	log        logger.Logger
	now        func() time.Time
	size       SizeFunc
	onProgress func(processed, total int)
}

// SizeFunc computes the on-disk size of a candidate directory.
type SizeFunc func(path string, log logger.Logger) (int64, error)

type Option func(*Scanner)

// WithClock fixes the "now" used for staleness classification.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// WithSizer replaces DirSize as the per-candidate size computation.
func WithSizer(fn SizeFunc) Option {
	return func(s *Scanner) {
		s.size = fn
	}
}

// WithProgress is called after each candidate is inspected.
func WithProgress(fn func(processed, total int)) Option {
	return func(s *Scanner) {
		s.onProgress = fn
	}
}

func New(log logger.Logger, opts ...Option) *Scanner {
	if log == nil {
		log = logger.Discard
	}
	s := &Scanner{log: log, now: time.Now, size: DirSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns topmost targets in discovery order. A root failure returns a
// nil slice and an error wrapping ErrScanRoot; no matches returns an empty
// slice and nil. Candidates that cannot be inspected are dropped with a warning.
func (s *Scanner) Scan(ctx context.Context, cfg model.SearchConfig) ([]model.Target, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRoot, err)
	}

	w := NewWalker(cfg, s.log)
	candidates, err := w.Match(ctx)
	if err != nil {
		return nil, err
	}

	paths := FilterNested(w.Root(), cfg.Name(), candidates)
	s.log.Debugf("found %d %s directories under %s", len(paths), cfg.Name(), w.Root())

	now := s.now()
	targets := make([]model.Target, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return targets, err
		}

		t, err := s.inspect(path, now)
		if err != nil {
			s.log.Warnf("skipping %s: %v", path, err)
		} else {
			targets = append(targets, t)
		}

		if s.onProgress != nil {
			s.onProgress(i+1, len(paths))
		}
	}

	return targets, nil
}

func (s *Scanner) inspect(path string, now time.Time) (model.Target, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Target{}, err
	}
	size, err := s.size(path, s.log)
	if err != nil {
		return model.Target{}, err
	}
	return model.Target{
		Path:         path,
		Size:         size,
		LastModified: info.ModTime(),
		Unused:       IsUnused(info.ModTime(), now),
	}, nil
}

// Summary is the one-line overview printed after a scan.
type Summary struct {
	Count     int
	TotalSize int64
	Unused    int
}

func Summarize(targets []model.Target) Summary {
	return Summary{
		Count:     len(targets),
		TotalSize: model.TotalSize(targets),
		Unused:    model.CountUnused(targets),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("Found %d directories (%s, unused: %d)", s.Count, model.FormatSize(s.TotalSize), s.Unused)
}
