// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format int

const (
	// FormatText is plain text output.
	FormatText Format = iota
	// FormatJSON is JSON output.
	FormatJSON
	// FormatMarkdown is Markdown output.
	FormatMarkdown
)

var (
	verbose bool
	// DebugWriter receives debug lines. Stderr, so --json output on stdout
	// stays parseable.
	DebugWriter io.Writer = os.Stderr
)

// SetVerbose toggles debug logging for the process.
func SetVerbose(v bool) { verbose = v }

// Verbose reports whether debug logging is enabled.
func Verbose() bool { return verbose }

// Debugf prints a diagnostic line to DebugWriter when verbose mode is on.
func Debugf(format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(DebugWriter, "debug: "+format+"\n", args...)
}

// Writer handles formatted output to a destination.
type Writer struct {
	dest   io.Writer
	format Format
}

// NewWriter creates a new output writer with the given format.
func NewWriter(format Format) *Writer {
	return &Writer{
		dest:   os.Stdout,
		format: format,
	}
}

// WriteJSON encodes a value as pretty-printed JSON.
func (w *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(w.dest)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteText writes plain text.
func (w *Writer) WriteText(s string) error {
	_, err := fmt.Fprint(w.dest, s)
	return err
}

// WriteLn writes a line of text.
func (w *Writer) WriteLn(s string) error {
	_, err := fmt.Fprintln(w.dest, s)
	return err
}

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// Heading prints a bold cyan section heading.
func Heading(format string, args ...interface{}) {
	color.New(color.FgCyan, color.Bold).Printf(format+"\n", args...)
}

// Successf prints a green success message.
func Successf(format string, args ...interface{}) {
	color.Green(format, args...)
}

// Warnf prints a yellow warning message.
func Warnf(format string, args ...interface{}) {
	color.Yellow(format, args...)
}

// Dimf prints secondary detail in faint text.
func Dimf(format string, args ...interface{}) {
	color.New(color.Faint).Printf(format+"\n", args...)
}
