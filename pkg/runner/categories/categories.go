// Package categories runs the category management commands.
package categories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/printers"
)

var errNoService = errors.New("can not manage categories, no service")

// Summary is a category with its block count.
type Summary struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
	Blocks int    `json:"blocks" yaml:"blocks"`
}

// List prints every category with its block count.
type List struct {
	Palette bool

	Service *app.Service
	Format  printers.Format
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}
	if n.Palette {
		pp.Palette()
		return nil
	}
	if n.Service == nil {
		return errNoService
	}
	snap, err := n.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, b := range snap.Blocks {
		counts[b.CategoryID]++
	}
	categories, err := n.Service.Categories(ctx)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		out := make([]Summary, 0, len(categories))
		for _, c := range categories {
			out = append(out, Summary{ID: c.ID, Name: c.Name, Color: c.Color, Blocks: counts[c.ID]})
		}
		return printers.Encode(n.Out, n.Format, out)
	}
	pp.Categories(categories, counts)
	return nil
}

// Add creates a category.
type Add struct {
	Name  string
	Color string

	Service *app.Service
	Format  printers.Format
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	c, err := n.Service.AddCategory(ctx, n.Name, n.Color)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, c)
	}
	_, _ = fmt.Fprintf(n.Out, "%s %s created (%s)\n", printers.Swatch(c.Color), c.Name, c.ID)
	return nil
}

// Edit renames or recolours a category. Nil fields are left alone.
type Edit struct {
	Ref   string
	Name  *string
	Color *string

	Service *app.Service
	Format  printers.Format
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	c, err := n.Service.EditCategory(ctx, n.Ref, n.Name, n.Color)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, c)
	}
	_, _ = fmt.Fprintf(n.Out, "%s %s updated\n", printers.Swatch(c.Color), c.Name)
	return nil
}

// Remove deletes a category that no block references.
type Remove struct {
	Ref     string
	Confirm func(label string) (bool, error)

	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if n.Confirm != nil {
		c, err := n.Service.Category(ctx, n.Ref)
		if err != nil {
			return err
		}
		ok, err := n.Confirm(fmt.Sprintf("Delete category %q", c.Name))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(n.Out, "kept", c.Name)
			return nil
		}
	}
	c, err := n.Service.DeleteCategory(ctx, n.Ref)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.Out, "deleted", c.Name)
	return nil
}
