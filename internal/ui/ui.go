// Package ui prints the pipeline's progress and diagnostics to the terminal.
//
// Output is styled with lipgloss. On Windows it is printed as plain text and
// headers get a "***** " prefix instead of a color.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled lines to one writer.
type Printer struct {
	w     io.Writer
	plain bool

	header  lipgloss.Style
	bold    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
}

// New creates a Printer for w. plain disables styling and switches headers
// to the "***** " form; callers pass true on Windows.
func New(w io.Writer, plain bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w:       w,
		plain:   plain,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD")),
		bold:    r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#98C379")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		hint:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
	}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

// Header prints a blank line followed by a section title.
func (p *Printer) Header(text string) {
	fmt.Fprintln(p.w)
	if p.plain {
		fmt.Fprintln(p.w, "***** "+text)
		return
	}
	fmt.Fprintln(p.w, p.header.Render(text))
}

// Bold prints an emphasized line.
func (p *Printer) Bold(text string) {
	fmt.Fprintln(p.w, p.render(p.bold, text))
}

// Println prints an unstyled line.
func (p *Printer) Println(text string) {
	fmt.Fprintln(p.w, text)
}

// Success prints a completion line.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.w, p.render(p.success, text))
}

// Warning prints a non-fatal notice.
func (p *Printer) Warning(text string) {
	fmt.Fprintln(p.w, p.render(p.warning, "WARNING: "+text))
}

// Error prints an error with the ERROR: prefix.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.render(p.failure, "ERROR: "+err.Error()))
}

// Hint prints a remediation line, typically a command to run.
func (p *Printer) Hint(text string) {
	fmt.Fprintln(p.w, p.render(p.hint, text))
}
