package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/printers"
)

// Show prints one block.
type Show struct {
	ID       string
	Markdown *printers.Markdown

	Service *app.Service

	Format printers.Format
	Out    io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	b, err := n.Service.Block(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, b)
	}
	var category *block.Category
	if b.CategoryID != "" {
		if c, err := n.Service.Category(ctx, b.CategoryID); err == nil {
			category = &c
		}
	}
	pp := printers.PrettyPrint{Out: n.Out, Markdown: n.Markdown}
	pp.Block(b, category)
	return nil
}
