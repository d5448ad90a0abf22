package clip

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/classify"
)

// Copy puts a block's content on the system clipboard.
type Copy struct {
	ID string
	// Unfence copies only the body of a fenced code block.
	Unfence bool
	// Write defaults to clipboard.WriteAll.
	Write func(string) error

	Service *app.Service
	Out     io.Writer
}

func (n *Copy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not copy, no service")
	}
	b, err := n.Service.Block(ctx, n.ID)
	if err != nil {
		return err
	}
	text := b.Content
	if n.Unfence && classify.IsFenced(text) {
		text, _ = classify.Unfence(text)
	}
	write := n.Write
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	_, _ = fmt.Fprintf(n.Out, "copied %q\n", b.Title)
	return nil
}
