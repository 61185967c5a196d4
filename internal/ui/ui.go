// Package ui handles the launcher's console surface: colored status
// lines on stderr and the interactive prompts used when a version must
// be supplied or a failed fetch retried.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

var writer io.Writer = os.Stderr

// SetWriter overrides the output writer (for testing).
func SetWriter(w io.Writer) {
	writer = w
}

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

func ansi(code, s string) string {
	if !stdoutColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func ansiStderr(code, s string) string {
	if !stderrColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s wrapped in bold ANSI codes (stdout).
func Bold(s string) string { return ansi("1", s) }

// Dim returns s wrapped in dim ANSI codes (stdout).
func Dim(s string) string { return ansi("2", s) }

// Green returns s wrapped in green ANSI codes (stdout).
func Green(s string) string { return ansi("32", s) }

// Red returns s wrapped in red ANSI codes (stdout).
func Red(s string) string { return ansi("31", s) }

// Warn prints a user-facing warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("33", "Warning:"), msg)
}

// Error prints a user-facing error to stderr.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("31", "Error:"), msg)
}

// Errorf prints a formatted user-facing error to stderr.
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Info prints a user-facing message to stderr with no prefix.
func Info(msg string) {
	fmt.Fprintf(writer, "%s\n", msg)
}

// Infof prints a formatted user-facing message to stderr with no prefix.
func Infof(format string, args ...any) {
	fmt.Fprintf(writer, format+"\n", args...)
}

// Console reads interactive answers. It satisfies the prompting
// interfaces in buildprops and launch; tests substitute a scripted
// implementation instead of driving stdin.
type Console struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewConsole returns a Console reading stdin and writing stderr.
func NewConsole() *Console {
	return &Console{In: os.Stdin, Out: os.Stderr}
}

func (c *Console) line() string {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	// EOF yields an empty answer, which every caller treats as decline
	// or missing.
	s, _ := c.reader.ReadString('\n')
	return strings.TrimSpace(s)
}

// Ask prints the question and returns the trimmed reply.
func (c *Console) Ask(question string) string {
	fmt.Fprintf(c.Out, "%s: ", question)
	return c.line()
}

// Confirm asks a y/N question. Only "y" or "yes" (case-insensitive)
// count as affirmative; empty input and EOF are negative.
func (c *Console) Confirm(question string) bool {
	fmt.Fprintf(c.Out, "%s [y/N]: ", question)
	switch strings.ToLower(c.line()) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
