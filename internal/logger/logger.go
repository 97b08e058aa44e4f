// Package logger provides the leveled console and file logging used by nmclean.
//
// Core packages depend only on the Logger interface. The console
// implementation prefixes each line with a colored symbol and filters by
// level; FileSink adds a size-rotated log file next to it.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger is the sink used by the scanner, archiver and orchestrator.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps debug, info, warn and error (case-insensitive) to a Level.
// Anything else defaults to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type symbol struct {
	text  string
	color *color.Color
}

var symbols = map[string]symbol{
	"debug":   {"·", color.New(color.FgHiBlack)},
	"info":    {"ℹ", color.New(color.FgBlue)},
	"success": {"✔", color.New(color.FgGreen)},
	"warn":    {"⚠", color.New(color.FgYellow)},
	"error":   {"✖", color.New(color.FgRed)},
}

// Console writes leveled messages to a writer. Safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	color  bool
	extras []io.Writer
}

// NewConsole creates a Console writing to w at the given level.
// Color is enabled only when w is a terminal and NO_COLOR is unset.
func NewConsole(w io.Writer, level Level) *Console {
	return &Console{
		w:     w,
		level: level,
		color: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Tee mirrors every emitted line, uncolored, to extra writers such as a FileSink.
func (c *Console) Tee(w ...io.Writer) *Console {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extras = append(c.extras, w...)
	return c
}

func (c *Console) Debugf(format string, args ...any) {
	c.log(LevelDebug, "debug", format, args...)
}

func (c *Console) Infof(format string, args ...any) {
	c.log(LevelInfo, "info", format, args...)
}

func (c *Console) Successf(format string, args ...any) {
	c.log(LevelInfo, "success", format, args...)
}

func (c *Console) Warnf(format string, args ...any) {
	c.log(LevelWarn, "warn", format, args...)
}

func (c *Console) Errorf(format string, args ...any) {
	c.log(LevelError, "error", format, args...)
}

func (c *Console) log(level Level, kind, format string, args ...any) {
	if c == nil || c.w == nil || level < c.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	sym := symbols[kind]

	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := sym.text
	if c.color {
		prefix = sym.color.Sprint(sym.text)
	}
	fmt.Fprintf(c.w, "%s %s\n", prefix, msg)

	for _, extra := range c.extras {
		fmt.Fprintf(extra, "%-5s %s\n", strings.ToUpper(level.String()), msg)
	}
}

type discard struct{}

func (discard) Debugf(string, ...any)   {}
func (discard) Infof(string, ...any)    {}
func (discard) Successf(string, ...any) {}
func (discard) Warnf(string, ...any)    {}
func (discard) Errorf(string, ...any)   {}

// Discard drops every message.
var Discard Logger = discard{}
