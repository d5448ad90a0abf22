package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/glyph"
)

const previewLines = 3

// chrome is the number of lines used by the header and footer.
const chrome = 4

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	header := m.styles.Title.Render("snip")
	if m.loading {
		header += m.styles.Status.Render("  loading" + glyph.Ellipsis)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	body := m.body()
	end := min(m.offset+m.bodyHeight(), len(body))
	for _, l := range body[min(m.offset, end):end] {
		b.WriteString(l.text)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

type line struct {
	row  int
	text string
}

// body renders every row, tagging each line with the row it belongs to.
func (m Model) body() []line {
	if !m.loaded {
		return nil
	}
	if len(m.rows) == 0 {
		return []line{{row: -1, text: m.styles.Empty.Render("  nothing to show")}}
	}
	width := max(m.width-2, 20)
	var out []line
	for i, r := range m.rows {
		g := m.board.Groups[r.group]
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render(glyph.Cursor + " ")
		}

		if r.block == nil {
			marker := glyph.Marker(g.Expanded)
			colorToken := ""
			if g.Category != nil {
				colorToken = g.Category.Color
			}
			text := fmt.Sprintf("%s%s %s %s %s", cursor, marker, m.styles.swatch(colorToken),
				m.styles.Group.Render(g.Name), m.styles.Count.Render(fmt.Sprintf("%d", len(g.Blocks))))
			out = append(out, line{row: i, text: text})
			continue
		}

		title := r.block.Title
		if i == m.cursor {
			title = m.styles.Cursor.Render(title)
		}
		out = append(out, line{row: i, text: cursor + m.styles.Block.Render(glyph.Bullet+" "+title)})
		if g.Preview {
			for _, p := range preview(r.block.Content) {
				p = truncate.StringWithTail(p, uint(max(width-8, 1)), glyph.Ellipsis)
				out = append(out, line{row: i, text: "  " + m.styles.Preview.Render(p)})
			}
		}
	}
	return out
}

// preview returns the first lines of content, without a code fence.
func preview(content string) []string {
	body, _ := classify.Unfence(content)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], glyph.Ellipsis)
	}
	return lines
}

func (m Model) footer() string {
	var parts []string
	switch {
	case m.confirm != nil:
		parts = append(parts, m.styles.Confirm.Render(fmt.Sprintf("delete %q? y/n", m.confirm.Title)))
	case m.err != nil:
		parts = append(parts, m.styles.Error.Render(m.err.Error()))
	case m.status != "":
		parts = append(parts, m.styles.Status.Render(m.status))
	default:
		shown := m.board.Count()
		status := fmt.Sprintf("%d of %d blocks · %s", shown, m.board.Total, m.vs.Variant().Name)
		parts = append(parts, m.styles.Status.Render(status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) bodyHeight() int {
	h := m.height - chrome - lipgloss.Height(m.help.View(m.keys))
	return max(h, 3)
}

// scroll keeps the cursor's lines inside the visible window.
func (m *Model) scroll() {
	body := m.body()
	first, last := -1, -1
	for i, l := range body {
		if l.row == m.cursor {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		m.offset = 0
		return
	}
	h := m.bodyHeight()
	if first < m.offset {
		m.offset = first
	}
	if last >= m.offset+h {
		m.offset = max(last-h+1, 0)
	}
	if first < m.offset {
		m.offset = first
	}
}
