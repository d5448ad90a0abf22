package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/snip/pkg/glyph"
	"tableflip.dev/snip/pkg/viewstate"
)

// ViewRow is one group's saved board state.
type ViewRow struct {
	Name     string `json:"name" yaml:"name"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Expanded bool   `json:"expanded" yaml:"expanded"`
	Preview  bool   `json:"preview" yaml:"preview"`
	Selected bool   `json:"selected" yaml:"selected"`
}

func mark(on bool) string {
	if on {
		return glyph.On
	}
	return color.New(color.Faint).Sprint(glyph.Off)
}

// View prints the saved per-group state and the active theme.
func (pp *PrettyPrint) View(rows []ViewRow, mode viewstate.ThemeMode, variant viewstate.Variant) {
	bold := color.New(color.Bold)
	w := pp.out()

	_, _ = bold.Fprint(w, "theme: ")
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n\n", Swatch(variant.Accent(mode)), variant.Name, mode)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("GROUP"), bold.Sprint("SELECTED"), bold.Sprint("EXPANDED"), bold.Sprint("PREVIEW"))
	for _, r := range rows {
		tbl.AddRow(Swatch(r.Color)+" "+r.Name, mark(r.Selected), mark(r.Expanded), mark(r.Preview))
	}
	_, _ = fmt.Fprintln(w, tbl)

	faint := color.New(color.Faint)
	legend := make([]string, 0, len(glyph.Legend()))
	for _, g := range glyph.Legend() {
		legend = append(legend, g.Symbol+" "+g.Meaning)
	}
	_, _ = faint.Fprintf(w, "\n%s\n", strings.Join(legend, "   "))
}

// Themes prints every theme variant, marking the active one.
func (pp *PrettyPrint) Themes(mode viewstate.ThemeMode, active viewstate.Variant) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, v := range viewstate.Variants() {
		current := ""
		if v.ID == active.ID {
			current = "*"
		}
		tbl.AddRow(current, Swatch(v.Accent(mode)), v.ID, v.Name)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
