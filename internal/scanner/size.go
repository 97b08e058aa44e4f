package scanner

import (
	"os"
	"path/filepath"

	"github.com/jackchuka/nmclean/internal/logger"
)

// Overridden in tests to simulate entries that cannot be stat'ed or read.
var (
	lstat   = os.Lstat
	readDir = os.ReadDir
)

// DirSize sums the sizes of all regular files under path. Symlinks and
// special files count as zero. A child that cannot be stat'ed or read
// contributes zero and is logged; only a failure on path itself is returned.
func DirSize(path string, log logger.Logger) (int64, error) {
	if log == nil {
		log = logger.Discard
	}

	info, err := lstat(path)
	if err != nil {
		return 0, err
	}
	if info.Mode().IsRegular() {
		return info.Size(), nil
	}
	if !info.IsDir() {
		return 0, nil
	}

	entries, err := readDir(path)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, e := range entries {
		child := filepath.Join(path, e.Name())
		size, err := DirSize(child, log)
		if err != nil {
			log.Warnf("size of %s unknown, counting 0: %v", child, err)
			continue
		}
		total += size
	}
	return total, nil
}
