package printers

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// Markdown renders block content with glamour.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown builds a renderer for the given glamour style ("dark" or
// "light") wrapping at width.
func NewMarkdown(style string, width int) (*Markdown, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{renderer: r}, nil
}

// Render returns content as styled terminal output.
func (m *Markdown) Render(content string) (string, error) {
	return m.renderer.Render(content)
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
