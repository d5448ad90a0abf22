// Package printers renders boards, blocks, and categories for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/glyph"
)

// PrettyPrint writes human readable output. A nil Out writes to color.Output.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// ExpandAll prints every group expanded regardless of saved state.
	ExpandAll bool
	// Width wraps previews; zero means 80.
	Width int
	// Markdown renders block bodies through glamour when set.
	Markdown *Markdown
}

const idWidth = 36

var spacing = strings.Repeat(" ", idWidth+2)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Swatch returns a coloured square for a category colour token. Unknown
// tokens render uncoloured.
func Swatch(token string) string {
	hex, err := block.ParseColor(token)
	if err != nil {
		return glyph.Swatch
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return glyph.Swatch
	}
	r, g, b := c.RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint(glyph.Swatch)
}

// TitleWithCount prints a group header.
func (pp *PrettyPrint) TitleWithCount(title, colorToken string, count int, expanded bool) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	w := pp.out()

	marker := glyph.Marker(expanded)
	if pp.ShowID {
		_, _ = fmt.Fprint(w, spacing)
	}
	_, _ = fmt.Fprintf(w, "%s %s ", marker, Swatch(colorToken))
	_, _ = t.Fprint(w, title)
	_, _ = c.Fprintf(w, " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(w, " block")
	default:
		_, _ = c.Fprintln(w, " blocks")
	}
}

// Board prints every group of b. Collapsed groups show only their header.
func (pp *PrettyPrint) Board(b app.Board) {
	w := pp.out()
	if len(b.Groups) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(w, " none\n\n")
		return
	}
	for _, g := range b.Groups {
		expanded := g.Expanded || pp.ExpandAll
		colorToken := ""
		if g.Category != nil {
			colorToken = g.Category.Color
		}
		pp.TitleWithCount(g.Name, colorToken, len(g.Blocks), expanded)
		if !expanded {
			continue
		}
		for _, blk := range g.Blocks {
			pp.blockLine(blk)
			if g.Preview {
				pp.preview(blk.Content)
			}
		}
		pp.NewLine()
	}
	if hidden := b.Total - b.Count(); hidden > 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(w, "%d blocks hidden by the current filter\n", hidden)
	}
}

func (pp *PrettyPrint) blockLine(b block.Block) {
	w := pp.out()
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Fprint(w, b.ID)
		_, _ = fmt.Fprint(w, strings.Repeat(" ", max(len(spacing)-len(b.ID), 1)))
	}
	_, _ = fmt.Fprintf(w, "  %s %s\n", glyph.Bullet, b.Title)
}

func (pp *PrettyPrint) preview(content string) {
	body := pp.render(content)
	if pp.ShowID {
		body = indent.String(body, uint(len(spacing)))
	}
	_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(body, "\n"))
}

func (pp *PrettyPrint) render(content string) string {
	if pp.Markdown != nil {
		if out, err := pp.Markdown.Render(content); err == nil {
			return out
		}
	}
	f := color.New(color.Faint)
	wrapped := wordwrap.String(content, pp.width()-6)
	return f.Sprint(indent.String(wrapped, 6))
}

// Block prints one block with its category.
func (pp *PrettyPrint) Block(b block.Block, category *block.Category) {
	w := pp.out()
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprintln(w, b.Title)
	name, colorToken := "Uncategorized", ""
	if category != nil {
		name, colorToken = category.Name, category.Color
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", Swatch(colorToken), name)
	_, _ = f.Fprintf(w, "%s · updated %s\n\n", b.ID, b.UpdatedAt.Local().Format("2006-01-02 15:04"))

	body := b.Content
	if pp.Markdown != nil {
		if out, err := pp.Markdown.Render(b.Content); err == nil {
			body = out
		}
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}
