package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"stacker.dev/stacker/internal/tui/style"
)

// consoleHandler writes bare messages: info and debug to stdout, warnings
// and errors to stderr.
type consoleHandler struct {
	stdout    io.Writer
	stderr    io.Writer
	debugMode bool
	quiet     *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	w := h.stdout
	if record.Level >= slog.LevelWarn {
		w = h.stderr
	}
	_, err := fmt.Fprintln(w, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// envInt reads a positive integer (or zero when allowZero) from the
// environment, falling back to def.
func envInt(name string, def int, allowZero bool) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < 0 || (v == 0 && !allowZero) {
		return def
	}
	return v
}

// newRotatingFile creates the rotating log file. Limits come from
// STACKER_LOG_MAX_SIZE (MB), STACKER_LOG_MAX_BACKUPS and STACKER_LOG_MAX_AGE (days).
func newRotatingFile(logFilePath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    envInt("STACKER_LOG_MAX_SIZE", 1, false),
		MaxBackups: envInt("STACKER_LOG_MAX_BACKUPS", 2, true),
		MaxAge:     envInt("STACKER_LOG_MAX_AGE", 30, false),
	}
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// SplogOptions configures a Splog
type SplogOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	// LogFile enables a rotating debug log when set.
	LogFile string
	// Debug shows debug messages on the console.
	Debug bool
}

// Splog writes user-facing output and mirrors it, with git invocations, to
// an optional log file.
type Splog struct {
	logger    *slog.Logger
	stdout    io.Writer
	stderr    io.Writer
	logWriter io.WriteCloser
	quiet     bool
}

// NewSplog creates a console-only splog on the process streams. Debug
// messages are shown when DEBUG is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a splog, opening the log file if configured
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	splog := &Splog{stdout: opts.Stdout, stderr: opts.Stderr}

	handlers := []slog.Handler{&consoleHandler{
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		debugMode: opts.Debug,
		quiet:     &splog.quiet,
	}}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := newRotatingFile(opts.LogFile)
		splog.logWriter = rotating
		handlers = append(handlers, slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// SetQuiet suppresses console output while a spinner owns the terminal.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// Stdout returns the writer for regular output.
func (s *Splog) Stdout() io.Writer {
	return s.stdout
}

// Stderr returns the writer for diagnostics.
func (s *Splog) Stderr() io.Writer {
	return s.stderr
}

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...any) {
	s.logger.Info(sprintf(format, args))
}

// Newline writes a newline
func (s *Splog) Newline() {
	if !s.quiet {
		_, _ = fmt.Fprintln(s.stdout)
	}
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...any) {
	s.logger.Warn("warning: " + sprintf(format, args))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...any) {
	s.logger.Error("error: " + sprintf(format, args))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...any) {
	s.logger.Debug(sprintf(format, args))
}

// Tip writes a hint for the next step
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(format string, args ...any) {
	s.logger.Info("hint: " + sprintf(format, args))
}

// Command records a git invocation. It is shown on the console when echo
// is set and always written to the log file.
func (s *Splog) Command(args []string, echo bool) {
	line := "git " + strings.Join(args, " ")
	if echo {
		s.logger.Info(style.ColorDim("$ " + line))
		return
	}
	s.logger.Debug("exec", slog.String("cmd", line))
}

// Passthrough writes captured output of a failed command verbatim.
func (s *Splog) Passthrough(stdout, stderr []byte) {
	if len(stdout) > 0 {
		_, _ = s.stdout.Write(stdout)
	}
	if len(stderr) > 0 {
		_, _ = s.stderr.Write(stderr)
	}
	s.logger.Debug("command output", slog.String("stdout", string(stdout)), slog.String("stderr", string(stderr)))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
