package theme

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/viewstate"
)

type Action string

const (
	ActionList   Action = "list"
	ActionToggle Action = "toggle"
	ActionSet    Action = "set"
	ActionMode   Action = "mode"
)

// Theme reads or changes the saved theme.
type Theme struct {
	Action Action
	// Value is the variant id for set and the mode for mode.
	Value string

	ViewState *viewstate.ViewState
	Out       io.Writer
}

func (n *Theme) Do(_ context.Context) error {
	vs := n.ViewState
	if vs == nil {
		return errors.New("can not change the theme, no view state")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	switch n.Action {
	case ActionList, "":
		pp.Themes(vs.ThemeMode(), vs.Variant())
		return nil
	case ActionToggle:
		if _, err := vs.ToggleThemeMode(); err != nil {
			return err
		}
	case ActionSet:
		if err := vs.SetThemeVariant(n.Value); err != nil {
			return err
		}
	case ActionMode:
		if err := vs.SetThemeMode(viewstate.ThemeMode(n.Value)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown theme action %q", n.Action)
	}
	v := vs.Variant()
	_, _ = fmt.Fprintf(n.Out, "%s %s (%s)\n", printers.Swatch(v.Accent(vs.ThemeMode())), v.Name, vs.ThemeMode())
	return nil
}
