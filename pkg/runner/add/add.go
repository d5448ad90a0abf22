package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/viewstate"
)

type Add struct {
	Title    string
	Content  string
	Category string
	Raw      bool

	Service   *app.Service
	ViewState *viewstate.ViewState

	Format printers.Format
	Out    io.Writer
}

// Result is the structured output of Add.
type Result struct {
	Block          block.Block     `json:"block" yaml:"block"`
	Classification classify.Result `json:"classification" yaml:"classification"`
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	b, res, err := n.Service.AddBlock(ctx, app.NewBlock{
		Title:    n.Title,
		Content:  n.Content,
		Category: n.Category,
		Raw:      n.Raw,
	})
	if err != nil {
		return err
	}

	n.Service.ExpandNewCategories(ctx, n.ViewState)

	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, Result{Block: b, Classification: res})
	}

	group := viewmodel.Uncategorized
	if b.CategoryID != "" {
		group = b.CategoryID
	}
	board, err := n.Service.Board(ctx, n.ViewState, app.BoardOptions{Categories: []string{group}})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, ExpandAll: true}
	pp.Board(board)
	return nil
}
