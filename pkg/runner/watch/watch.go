// Package watch reprints the board whenever the store changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/logging"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/viewstate"
)

type Watch struct {
	Options   app.BoardOptions
	ShowID    bool
	ExpandAll bool
	// Clear wipes the terminal before each redraw.
	Clear bool

	Service   *app.Service
	ViewState *viewstate.ViewState
	Logger    *zap.Logger
	Out       io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	log := logging.OrNop(n.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}

	if err := n.draw(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug("store changed", zap.Stringer("type", ev.Type), zap.String("id", ev.ID))
			if err := n.draw(ctx); err != nil {
				// Keep watching; a half written record fixes itself on the next event.
				log.Warn("redraw failed", zap.Error(err))
			}
		}
	}
}

func (n *Watch) draw(ctx context.Context) error {
	board, err := n.Service.Board(ctx, n.ViewState, n.Options)
	if err != nil {
		return err
	}
	if n.Clear {
		termenv.NewOutput(n.Out).ClearScreen()
	} else {
		_, _ = fmt.Fprintln(n.Out)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID, ExpandAll: n.ExpandAll}
	pp.Board(board)
	return nil
}
