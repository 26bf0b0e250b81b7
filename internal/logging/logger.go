// Package logging provides a leveled logger with lipgloss-colored level
// tags and an optional append-only file sink.
//
// Console output goes to the writers given to NewLogger (either may be nil,
// which the TUI uses to keep the alt-screen clean). The file sink always
// receives plain, uncolored lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when level tags are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config configures a Logger.
type Config struct {
	Color   ColorMode
	LogFile string
	Verbose bool
}

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "LOG"
}

var levelColors = map[Level]lipgloss.Color{
	LevelDebug:   lipgloss.Color("14"), // cyan
	LevelInfo:    lipgloss.Color("12"), // blue
	LevelSuccess: lipgloss.Color("10"), // green
	LevelWarn:    lipgloss.Color("11"), // yellow
	LevelError:   lipgloss.Color("9"),  // red
}

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	stdout  io.Writer
	stderr  io.Writer
	styles  map[Level]lipgloss.Style
	verbose bool
	file    *os.File
	now     func() time.Time
}

// NewLogger creates a Logger writing INFO..WARN to stdout and ERROR to
// stderr. Call Close when done if cfg.LogFile was set.
func NewLogger(cfg Config, stdout, stderr io.Writer) (*Logger, error) {
	l := &Logger{
		stdout:  stdout,
		stderr:  stderr,
		verbose: cfg.Verbose,
		now:     time.Now,
	}

	var rw io.Writer = io.Discard
	if stdout != nil {
		rw = stdout
	}
	r := lipgloss.NewRenderer(rw)
	if colorEnabled(cfg.Color, stdout) {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	l.styles = make(map[Level]lipgloss.Style, len(levelColors))
	for lvl, c := range levelColors {
		l.styles[lvl] = r.NewStyle().Bold(true).Foreground(c)
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	l, _ := NewLogger(Config{Color: ColorNever}, nil, nil)
	return l
}

func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Log writes one line at level. DEBUG lines are dropped unless verbose.
func (l *Logger) Log(level Level, text string) {
	if level == LevelDebug && !l.verbose {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	tag := "[" + level.String() + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if level == LevelError {
		out = l.stderr
	}
	if out != nil {
		_, _ = io.WriteString(out, ts+" "+l.styles[level].Render(tag)+" "+text+"\n")
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" "+tag+" "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...any) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...any) {
	l.Log(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...any) {
	l.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...any) {
	l.Log(LevelError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(format string, args ...any) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...))
}
