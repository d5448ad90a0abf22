package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/snip/pkg/block"
)

// Categories prints a table of categories with their block counts.
func (pp *PrettyPrint) Categories(categories []block.Category, counts map[string]int) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("COLOR"), bold.Sprint("BLOCKS"), bold.Sprint("ID"))
	for _, c := range categories {
		tbl.AddRow(Swatch(c.Color)+" "+c.Name, c.Color, counts[c.ID], c.ID)
	}
	if len(categories) == 0 {
		tbl.AddRow(color.New(color.Faint, color.Italic).Sprint("none"), "", "", "")
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Palette prints the named category colours.
func (pp *PrettyPrint) Palette() {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range block.Palette() {
		tbl.AddRow(Swatch(c.Value), c.Name, c.Value)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
