package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/printers"
)

// Edit changes the fields of one block. Nil fields are left alone.
type Edit struct {
	ID       string
	Title    *string
	Content  *string
	Category *string
	Format   bool

	Service *app.Service

	Output printers.Format
	Out    io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	b, err := n.Service.EditBlock(ctx, n.ID, app.BlockEdit{
		Title:    n.Title,
		Content:  n.Content,
		Category: n.Category,
		Format:   n.Format,
	})
	if err != nil {
		return err
	}
	if n.Output.Structured() {
		return printers.Encode(n.Out, n.Output, b)
	}
	var category *block.Category
	if b.CategoryID != "" {
		if c, err := n.Service.Category(ctx, b.CategoryID); err == nil {
			category = &c
		}
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Block(b, category)
	return nil
}
