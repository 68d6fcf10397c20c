// Package logger provides the leveled console logger used across exhume.
// Output is timestamped, level-filtered, and colorized when writing to a
// terminal. The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes leveled, timestamped log lines to a writer.
// A nil writer silently discards all messages.
type ConsoleLogger struct {
	writer   io.Writer
	level    int
	useColor bool
	mu       sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to w at the given
// minimum level. Valid levels are debug, info, warn, and error
// (case-insensitive); anything else falls back to info. Color output is
// enabled when w is a terminal.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:   w,
		level:    parseLevel(level),
		useColor: isTerminal(w),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
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

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.write(levelDebug, "DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.write(levelInfo, "INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.write(levelWarn, "WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.write(levelError, "ERROR", message)
}

func (cl *ConsoleLogger) write(level int, tag, message string) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	ts := time.Now().Format("15:04:05")
	if cl.useColor {
		tag = colorize(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, message)
}

func colorize(tag string) string {
	switch tag {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "INFO":
		return color.New(color.FgBlue).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}
