package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is a size-rotated log file. It prefixes each line with a timestamp.
type FileSink struct {
	rotator *lumberjack.Logger
	logger  *log.Logger
}

// NewFileSink opens (or creates) path for appending. Files rotate at 10MB
// with three compressed backups kept for 30 days.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
	return &FileSink{
		rotator: rotator,
		logger:  log.New(rotator, "", log.LstdFlags),
	}, nil
}

// Write logs p as one timestamped entry.
func (s *FileSink) Write(p []byte) (int, error) {
	if err := s.logger.Output(2, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *FileSink) Close() error {
	return s.rotator.Close()
}

var _ io.WriteCloser = (*FileSink)(nil)
