package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleHandler prints bare messages: no timestamps, no level prefixes
type consoleHandler struct {
	writer io.Writer
	debug  bool
	quiet  *atomic.Bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || h.debug
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if h.quiet.Load() {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

// fanoutHandler sends each record to every handler that accepts its level
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithAttrs(attrs)
	}
	return next
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithGroup(name)
	}
	return next
}

// rotation limits for the log file, overridable from the environment
var rotationEnv = []struct {
	name string
	min  int
	set  func(*lumberjack.Logger, int)
}{
	{"SNAP_LOG_MAX_SIZE", 1, func(l *lumberjack.Logger, v int) { l.MaxSize = v }},
	{"SNAP_LOG_MAX_BACKUPS", 0, func(l *lumberjack.Logger, v int) { l.MaxBackups = v }},
	{"SNAP_LOG_MAX_AGE", 1, func(l *lumberjack.Logger, v int) { l.MaxAge = v }},
}

func newRotatingFile(path string) *lumberjack.Logger {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
	for _, setting := range rotationEnv {
		raw := os.Getenv(setting.name)
		if raw == "" {
			continue
		}
		if v, err := strconv.Atoi(raw); err == nil && v >= setting.min {
			setting.set(file, v)
		}
	}
	return file
}

// Splog is snap's console and log file output
type Splog struct {
	logger  *slog.Logger
	writer  io.Writer
	logFile io.Closer
	quiet   atomic.Bool
}

// SplogOptions configures a Splog
type SplogOptions struct {
	// Writer receives console output; defaults to os.Stdout
	Writer io.Writer
	// LogFile enables a rotating debug log when set
	LogFile string
	// Debug shows debug messages on the console
	Debug bool
}

// NewSplogWithOptions creates a Splog. With a LogFile, every message
// including debug output is also written there with a timestamp and PID.
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	splog := &Splog{writer: opts.Writer}
	if splog.writer == nil {
		splog.writer = os.Stdout
	}

	handlers := fanoutHandler{&consoleHandler{writer: splog.writer, debug: opts.Debug, quiet: &splog.quiet}}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file := newRotatingFile(opts.LogFile)
		splog.logFile = file

		fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler.WithAttrs([]slog.Attr{slog.Int("pid", os.Getpid())}))
	}

	splog.logger = slog.New(handlers)
	return splog, nil
}

// SetQuiet suppresses console output. The log file still receives everything.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet.Store(quiet)
}

// logf formats like fmt.Sprintf, except a message without args is used verbatim
func (s *Splog) logf(level slog.Level, prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "", format, args)
}

// Success writes a message for a completed step
func (s *Splog) Success(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "✅ ", format, args)
}

// Tip suggests what to run next
func (s *Splog) Tip(format string, args ...interface{}) {
	s.logf(slog.LevelInfo, "💡 ", format, args)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logf(slog.LevelWarn, "⚠️  ", format, args)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.logf(slog.LevelError, "❌ ", format, args)
}

// Debug writes a debug message. It satisfies git.Logger.
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logf(slog.LevelDebug, "", format, args)
}

// Page writes pre-rendered output as is. It bypasses the log file.
func (s *Splog) Page(content string) {
	if s.quiet.Load() {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes an empty line
func (s *Splog) Newline() {
	s.Page("\n")
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logFile != nil {
		return s.logFile.Close()
	}
	return nil
}
