// Package cleaner selects scanned directories and removes them.
//
// Run moves through Scanning, Selecting, then either a dry-run report or
// BackingUp and Removing, and always ends in Reporting. Failures of a single
// target are recorded and the batch continues; only a scan-root or backup
// failure aborts the run.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackchuka/nmclean/internal/logger"
	"github.com/jackchuka/nmclean/internal/model"
)

var (
	// ErrBackupAborted is returned when the archive could not be written; no
	// target was removed.
	ErrBackupAborted = errors.New("backup failed, nothing removed")

	// ErrNoSelector is returned for interactive runs without a Selector or Confirmer.
	ErrNoSelector = errors.New("interactive mode requires a selector and a confirmer")
)

type Scanner interface {
	Scan(ctx context.Context, cfg model.SearchConfig) ([]model.Target, error)
}

// Selector picks the subset to remove. An empty result means nothing was chosen.
// Entries with Unused set should start out selected.
type Selector interface {
	Select(ctx context.Context, targets []model.Target) ([]model.Target, error)
}

// Confirmer asks for final approval of count directories totalling size bytes.
type Confirmer interface {
	Confirm(ctx context.Context, count int, size int64) (bool, error)
}

type Archiver interface {
	Archive(ctx context.Context, dirs []string) (string, error)
}

// ProgressSink receives one Update after every removal attempt and a final Done.
type ProgressSink interface {
	Start(total int)
	Update(current, total int, bytesFreed int64)
	Done(result *model.RemovalResult)
}

// RemoveFunc deletes one directory tree.
type RemoveFunc func(path string) error

type Deps struct {
	Scanner   Scanner
	Selector  Selector
	Confirmer Confirmer
	Archiver  Archiver
	Progress  ProgressSink
	Remove    RemoveFunc
	Log       logger.Logger
}

type Cleaner struct {
	scanner   Scanner
	selector  Selector
	confirmer Confirmer
	archiver  Archiver
	progress  ProgressSink
	remove    RemoveFunc
	log       logger.Logger
}

func New(deps Deps) *Cleaner {
	c := &Cleaner{
		scanner:   deps.Scanner,
		selector:  deps.Selector,
		confirmer: deps.Confirmer,
		archiver:  deps.Archiver,
		progress:  deps.Progress,
		remove:    deps.Remove,
		log:       deps.Log,
	}
	if c.remove == nil {
		c.remove = os.RemoveAll
	}
	if c.progress == nil {
		c.progress = nopProgress{}
	}
	if c.log == nil {
		c.log = logger.Discard
	}
	return c
}

// Run executes one removal pass. The returned result is never nil.
func (c *Cleaner) Run(ctx context.Context, opts model.RemovalOptions) (*model.RemovalResult, error) {
	result := &model.RemovalResult{}

	if opts.Mode == model.ModeInteractive {
		if c.selector == nil || (c.confirmer == nil && !opts.DryRun) {
			return result, ErrNoSelector
		}
	}
	if opts.Backup && !opts.DryRun && c.archiver == nil {
		return result, fmt.Errorf("%w: no archiver configured", ErrBackupAborted)
	}

	// Scanning
	targets, err := c.scanner.Scan(ctx, opts.Search)
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", opts.Search.StartPath, err)
	}
	if len(targets) == 0 {
		c.log.Warnf("no %s directories found", opts.Search.Name())
		result.Outcome = model.OutcomeNothingFound
		return result, nil
	}

	// Selecting
	selected, err := c.selectTargets(ctx, opts.Mode, targets)
	if err != nil {
		return result, err
	}
	result.Selected = selected
	if len(selected) == 0 {
		if opts.Mode == model.ModeUnused {
			c.log.Infof("no unused directories found")
		} else {
			c.log.Warnf("no directories selected")
		}
		result.Outcome = model.OutcomeNothingSelected
		return result, nil
	}

	total := model.TotalSize(selected)

	if opts.DryRun {
		c.log.Infof("dry run: %d directories (%s) would be removed", len(selected), model.FormatSize(total))
		result.Outcome = model.OutcomeDryRun
		return result, nil
	}

	if opts.Mode == model.ModeInteractive {
		ok, err := c.confirmer.Confirm(ctx, len(selected), total)
		if err != nil {
			return result, fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			c.log.Warnf("removal cancelled")
			result.Outcome = model.OutcomeDeclined
			return result, nil
		}
	}

	// BackingUp
	if opts.Backup {
		path, err := c.archiver.Archive(ctx, model.Paths(selected))
		if err != nil {
			c.log.Errorf("backup failed: %v", err)
			return result, fmt.Errorf("%w: %w", ErrBackupAborted, err)
		}
		result.BackupPath = path
		c.log.Successf("backup created: %s", path)
	}

	// Removing
	c.removeAll(ctx, selected, result)

	// Reporting
	c.progress.Done(result)
	if result.Outcome == model.OutcomeCancelled {
		return result, ctx.Err()
	}
	return result, nil
}

func (c *Cleaner) selectTargets(ctx context.Context, mode model.RemovalMode, targets []model.Target) ([]model.Target, error) {
	switch mode {
	case model.ModeAll:
		return targets, nil
	case model.ModeUnused:
		return unused(targets), nil
	case model.ModeInteractive:
		selected, err := c.selector.Select(ctx, targets)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		return selected, nil
	default:
		return nil, fmt.Errorf("unknown removal mode %v", mode)
	}
}

func unused(targets []model.Target) []model.Target {
	var out []model.Target
	for _, t := range targets {
		if t.Unused {
			out = append(out, t)
		}
	}
	return out
}

// removeAll deletes targets one at a time. A cancelled context stops new
// removals; targets already attempted keep their recorded outcome.
func (c *Cleaner) removeAll(ctx context.Context, targets []model.Target, result *model.RemovalResult) {
	result.Outcome = model.OutcomeCompleted
	c.progress.Start(len(targets))

	for i, t := range targets {
		if ctx.Err() != nil {
			c.log.Warnf("cancelled after %d of %d directories", i, len(targets))
			result.Outcome = model.OutcomeCancelled
			return
		}

		err := c.remove(t.Path)
		result.Record(t, err)
		if err != nil {
			c.log.Errorf("remove %s: %v", t.Path, err)
		} else {
			c.log.Debugf("removed %s (%s)", t.Path, model.FormatSize(t.Size))
		}

		c.progress.Update(i+1, len(targets), result.BytesFreed)
	}
}

type nopProgress struct{}

func (nopProgress) Start(int)                 {}
func (nopProgress) Update(int, int, int64)    {}
func (nopProgress) Done(*model.RemovalResult) {}
