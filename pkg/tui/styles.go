package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/glyph"
	"tableflip.dev/snip/pkg/viewstate"
)

// styles centralizes Lip Gloss styles for the board.
type styles struct {
	Title   lipgloss.Style
	Group   lipgloss.Style
	Count   lipgloss.Style
	Block   lipgloss.Style
	Preview lipgloss.Style
	Cursor  lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Confirm lipgloss.Style
	Empty   lipgloss.Style
}

func newStyles(mode viewstate.ThemeMode, variant viewstate.Variant) styles {
	accent := lipgloss.Color(variant.Accent(mode))
	faint := lipgloss.Color("244")
	if mode != viewstate.ThemeDark {
		faint = lipgloss.Color("242")
	}

	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Group:   lipgloss.NewStyle().Bold(true),
		Count:   lipgloss.NewStyle().Foreground(faint),
		Block:   lipgloss.NewStyle().PaddingLeft(4),
		Preview: lipgloss.NewStyle().PaddingLeft(6).Foreground(faint),
		Cursor:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Status:  lipgloss.NewStyle().Foreground(faint),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
		Confirm: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Empty:   lipgloss.NewStyle().Foreground(faint).Italic(true),
	}
}

// swatch renders the category colour square. Bad tokens fall back to the
// default colour.
func (s styles) swatch(token string) string {
	hex, err := block.ParseColor(token)
	if err != nil {
		hex = block.DefaultColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(glyph.Swatch)
}
