package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/backplane/insort/model"
	"github.com/charmbracelet/lipgloss"
)

// Printer writes status lines to out and diagnostics to errOut. Styles are
// bound to the stream they render for, so colour only reaches terminals.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	successStyle lipgloss.Style
	faintStyle   lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewPrinter creates a Printer for the given streams.
func NewPrinter(out, errOut io.Writer) *Printer {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:          out,
		errOut:       errOut,
		successStyle: outRenderer.NewStyle().Foreground(lipgloss.Color("78")),  // Green
		faintStyle:   outRenderer.NewStyle().Faint(true),
		warningStyle: errRenderer.NewStyle().Foreground(lipgloss.Color("214")), // Orange
		errorStyle:   errRenderer.NewStyle().Foreground(lipgloss.Color("197")), // Red
	}
}

// Report prints the status line for an outcome.
func (p *Printer) Report(o model.Outcome) {
	if o.Changed {
		p.Changed(o.Path, o.Delta)
		return
	}
	p.Unchanged(o.Path)
}

// Unchanged prints "<name> left unchanged.".
func (p *Printer) Unchanged(name string) {
	fmt.Fprintf(p.out, "%s %s\n", name, p.faintStyle.Render("left unchanged."))
}

// Changed prints "<name> sorted and de-duplicated; delta: <sign><n> <line|lines>".
func (p *Printer) Changed(name string, delta int) {
	fmt.Fprintf(p.out, "%s sorted and de-duplicated; delta: %s\n", name, p.successStyle.Render(FormatDelta(delta)))
}

// Warning prints "Warning: <message>" to the error stream.
func (p *Printer) Warning(format string, a ...any) {
	fmt.Fprintf(p.errOut, "%s %s\n", p.warningStyle.Render("Warning:"), fmt.Sprintf(format, a...))
}

// Error prints "Error: <err>" to the error stream.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.errOut, "%s %v\n", p.errorStyle.Render("Error:"), err)
}

// FormatDelta renders a line count difference as "+1 line", "-2 lines" or
// "+0 lines".
func FormatDelta(delta int) string {
	sign := "+"
	magnitude := delta
	if delta < 0 {
		sign = "-"
		magnitude = -delta
	}
	unit := "lines"
	if magnitude == 1 {
		unit = "line"
	}
	return fmt.Sprintf("%s%d %s", sign, magnitude, unit)
}

type flusher interface {
	Flush() error
}

// Confirm asks whether filename should be created. It writes the prompt to
// out without a trailing newline, reads one line from in and returns true only
// if the trimmed answer is "y". End of input counts as a no.
func Confirm(in io.Reader, out io.Writer, filename string) (bool, error) {
	promptStyle := lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("205")) // Magenta
	if _, err := fmt.Fprintf(out, "%s %s", filename, promptStyle.Render("does not exist. create it? (y/n) >")); err != nil {
		return false, err
	}
	if f, ok := out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return false, err
		}
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.TrimSpace(response) == "y", nil
}
