// Package alerts writes short status lines for commands: confirmations,
// warnings about failed sources and errors.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/internal/cmd/emoji"
	"github.com/agentstation/locallift/internal/cmd/globals"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelSuccess:
		return emoji.Success
	default:
		return "-"
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	default:
		return "\033[36m"
	}
}

const reset = "\033[0m"

// Alert is a single status message.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	s := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		s += ": " + a.Err.Error()
	}
	return s
}

// Writer prints alerts. Quiet writers only print warnings and errors.
type Writer struct {
	w     io.Writer
	color bool
	quiet bool
}

// NewWriter creates a writer for stderr, colored when stderr is a terminal.
func NewWriter(quiet bool) *Writer {
	fd := os.Stderr.Fd()
	return &Writer{
		w:     os.Stderr,
		color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		quiet: quiet,
	}
}

// NewWriterTo creates an uncolored writer for w.
func NewWriterTo(w io.Writer, quiet bool) *Writer {
	return &Writer{w: w, quiet: quiet}
}

// Write prints a.
func (w *Writer) Write(a *Alert) {
	if w.quiet && a.Level > LevelWarning {
		return
	}
	line := a.String()
	if w.color {
		line = a.Level.color() + line + reset
	}
	_, _ = fmt.Fprintln(w.w, line)
	for _, d := range a.Details {
		_, _ = fmt.Fprintf(w.w, "   %s\n", d)
	}
}

// Success prints a success line.
func (w *Writer) Success(format string, args ...any) {
	w.Write(&Alert{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

// Info prints an informational line.
func (w *Writer) Info(format string, args ...any) {
	w.Write(&Alert{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Warning prints a warning with its cause.
func (w *Writer) Warning(err error, format string, args ...any) {
	w.Write(&Alert{Level: LevelWarning, Message: fmt.Sprintf(format, args...), Err: err})
}

// Error prints an error with its cause.
func (w *Writer) Error(err error, format string, args ...any) {
	w.Write(&Alert{Level: LevelError, Message: fmt.Sprintf(format, args...), Err: err})
}

// ForCommand creates a writer for the command's stderr honoring --quiet
// and --no-color.
func ForCommand(cmd *cobra.Command) *Writer {
	flags := globals.Parse(cmd)
	if w := cmd.ErrOrStderr(); w != os.Stderr || flags.NoColor {
		return NewWriterTo(w, flags.Quiet)
	}
	return NewWriter(flags.Quiet)
}
