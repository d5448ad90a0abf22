package classify

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/printers"
)

// Classify reports how a piece of text would be stored.
type Classify struct {
	Text      string
	// Languages lists the detectable languages instead of classifying Text.
	Languages bool

	Format printers.Format
	Out    io.Writer
}

func (n *Classify) Do(_ context.Context) error {
	if n.Languages {
		return n.languages()
	}
	res := classify.Classify(n.Text)
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, res)
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	_, _ = bold.Fprint(n.Out, "kind: ")
	_, _ = fmt.Fprintln(n.Out, res.Kind)
	if res.Language != "" {
		_, _ = bold.Fprint(n.Out, "language: ")
		_, _ = fmt.Fprintln(n.Out, res.Language)
	}
	_, _ = faint.Fprintln(n.Out, "---")
	_, _ = fmt.Fprintln(n.Out, res.Output)
	return nil
}

func (n *Classify) languages() error {
	tags := classify.Languages()
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, tags)
	}
	for i, tag := range tags {
		_, _ = fmt.Fprintf(n.Out, "%d. %s\n", i+1, tag)
	}
	return nil
}
