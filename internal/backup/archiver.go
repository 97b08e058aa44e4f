// Package backup writes the zip archive taken before directories are removed.
package backup

import (
	"archive/zip"
	"compress/flate"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackchuka/nmclean/internal/logger"
)

// DefaultPrefix is prepended to every archive file name.
const DefaultPrefix = "node_modules_backup_"

// ErrBackup is wrapped by every BackupError.
var ErrBackup = errors.New("backup failed")

// BackupError reports the archive path and the step that failed.
type BackupError struct {
	Path string
	Op   string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *BackupError) Unwrap() []error {
	return []error{ErrBackup, e.Err}
}

// Archiver packages directories into a single zip file.
type Archiver struct {
	Dir    string // output directory, current directory when empty
	Prefix string
	Level  int // flate level, flate.BestCompression when zero

	now func() time.Time
	log logger.Logger
}

func NewArchiver(dir string, log logger.Logger) *Archiver {
	if log == nil {
		log = logger.Discard
	}
	return &Archiver{
		Dir:    dir,
		Prefix: DefaultPrefix,
		Level:  flate.BestCompression,
		now:    time.Now,
		log:    log,
	}
}

// WithClock replaces the timestamp source used for archive names.
func (a *Archiver) WithClock(now func() time.Time) *Archiver {
	a.now = now
	return a
}

// FileName returns the archive name for t: the UTC ISO-8601 timestamp with
// millisecond precision, colons and dots replaced by dashes.
func FileName(prefix string, t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return prefix + stamp + ".zip"
}

// Archive writes every directory in dirs into one zip, each stored under its
// own base name. The archive is fully flushed and closed before Archive
// returns. On failure the partial file is removed.
func (a *Archiver) Archive(ctx context.Context, dirs []string) (string, error) {
	dir := a.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &BackupError{Op: "resolve working directory", Err: err}
		}
		dir = wd
	}
	path := filepath.Join(dir, FileName(a.Prefix, a.now()))

	// O_EXCL: a same-millisecond name collision fails instead of overwriting
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", &BackupError{Path: path, Op: "create", Err: err}
	}

	if err := a.write(ctx, f, dirs); err != nil {
		f.Close()
		os.Remove(path)
		return "", &BackupError{Path: path, Op: "write", Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return "", &BackupError{Path: path, Op: "sync", Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", &BackupError{Path: path, Op: "close", Err: err}
	}

	a.log.Debugf("archived %d directories to %s", len(dirs), path)
	return path, nil
}

func (a *Archiver) write(ctx context.Context, w io.Writer, dirs []string) error {
	zw := zip.NewWriter(w)
	level := a.Level
	if level == 0 {
		level = flate.BestCompression
	}
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for _, dir := range dirs {
		if err := addDir(ctx, zw, dir, filepath.Base(dir)); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addDir(ctx context.Context, zw *zip.Writer, dir, prefix string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = prefix + "/" + filepath.ToSlash(rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name

		switch {
		case d.IsDir():
			header.Name += "/"
			header.Method = zip.Store
			_, err = zw.CreateHeader(header)
			return err
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			header.Method = zip.Store
			entry, err := zw.CreateHeader(header)
			if err != nil {
				return err
			}
			_, err = io.WriteString(entry, link)
			return err
		case info.Mode().IsRegular():
			header.Method = zip.Deflate
			entry, err := zw.CreateHeader(header)
			if err != nil {
				return err
			}
			return copyFile(entry, path)
		default:
			return nil
		}
	})
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
