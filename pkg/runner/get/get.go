package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/viewstate"
)

// Get prints the grouped board.
type Get struct {
	Options   app.BoardOptions
	ShowID    bool
	ExpandAll bool
	Markdown  *printers.Markdown

	Service   *app.Service
	ViewState *viewstate.ViewState

	Format printers.Format
	Out    io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	board, err := n.Service.Board(ctx, n.ViewState, n.Options)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, board)
	}
	pp := printers.PrettyPrint{
		Out:       n.Out,
		ShowID:    n.ShowID,
		ExpandAll: n.ExpandAll,
		Markdown:  n.Markdown,
	}
	pp.Board(board)
	return nil
}
