package rm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/snip/pkg/app"
)

// Remove deletes a block after confirmation.
type Remove struct {
	ID string
	// Confirm is asked before deleting. Nil deletes without asking.
	Confirm func(label string) (bool, error)

	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	b, err := n.Service.Block(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Confirm != nil {
		ok, err := n.Confirm(fmt.Sprintf("Delete %q", b.Title))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(n.Out, "kept", b.ID)
			return nil
		}
	}
	if err := n.Service.DeleteBlock(ctx, b.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.Out, "deleted", b.ID)
	return nil
}
