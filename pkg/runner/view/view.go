// Package view changes the saved board state from the command line.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/viewstate"
)

type Action string

const (
	ActionShow       Action = "show"
	ActionExpand     Action = "expand"
	ActionCollapse   Action = "collapse"
	ActionPreview    Action = "preview"
	ActionSelect     Action = "select"
	ActionDeselect   Action = "deselect"
	ActionSelectAll  Action = "select-all"
	ActionSelectNone Action = "select-none"
)

// View applies Action to the groups named in Names, or to every group when
// All is set.
type View struct {
	Action Action
	Names  []string
	All    bool

	Service   *app.Service
	ViewState *viewstate.ViewState

	Format printers.Format
	Out    io.Writer
}

func (n *View) Do(ctx context.Context) error {
	if n.Service == nil || n.ViewState == nil {
		return errors.New("can not change the view, no service or view state")
	}
	categories, err := n.Service.Categories(ctx)
	if err != nil {
		return err
	}
	if err := n.ViewState.Reconcile(categories); err != nil {
		return err
	}

	if err := n.apply(categories); err != nil {
		return err
	}
	return n.print(categories)
}

func (n *View) apply(categories []block.Category) error {
	vs := n.ViewState
	switch n.Action {
	case ActionShow:
		return nil
	case ActionSelectAll:
		return vs.SelectAll(categories)
	case ActionSelectNone:
		return vs.DeselectAll()
	}

	if !n.All && len(n.Names) == 0 {
		return fmt.Errorf("%s needs at least one category or --all", n.Action)
	}
	targets := viewmodel.GroupNames(categories)
	if !n.All {
		var err error
		if targets, err = resolveGroups(categories, n.Names); err != nil {
			return err
		}
	}

	switch n.Action {
	case ActionExpand:
		if n.All {
			return vs.ExpandAll(targets)
		}
		return each(targets, func(name string) error { return vs.SetExpanded(name, true) })
	case ActionCollapse:
		if n.All {
			return vs.CollapseAll(targets)
		}
		return each(targets, func(name string) error { return vs.SetExpanded(name, false) })
	case ActionPreview:
		if n.All {
			return vs.ToggleAllPreviews(targets)
		}
		return each(targets, vs.TogglePreview)
	case ActionSelect, ActionDeselect:
		return n.changeSelection(categories, targets)
	default:
		return fmt.Errorf("unknown view action %q", n.Action)
	}
}

func (n *View) changeSelection(categories []block.Category, groups []string) error {
	selectable := viewstate.SelectableIDs(categories)
	selected := n.ViewState.Selected()
	for _, id := range groupIDs(categories, groups) {
		if n.Action == ActionSelect {
			selected[id] = struct{}{}
		} else {
			delete(selected, id)
		}
	}
	ids := make([]string, 0, len(selected))
	for _, id := range selectable {
		if selected.Has(id) {
			ids = append(ids, id)
		}
	}
	return n.ViewState.SetSelected(ids, len(selectable))
}

func (n *View) print(categories []block.Category) error {
	selected := n.ViewState.Selected()
	rows := make([]printers.ViewRow, 0, len(categories)+1)
	for _, name := range viewmodel.GroupNames(categories) {
		row := printers.ViewRow{
			Name:     name,
			Expanded: n.ViewState.IsExpanded(name),
			Preview:  n.ViewState.PreviewVisible(name),
		}
		for _, id := range groupIDs(categories, []string{name}) {
			row.Selected = row.Selected || selected.Has(id)
		}
		if name != viewmodel.Uncategorized {
			if c, ok := block.ResolveCategory(categories, name); ok {
				row.Color = c.Color
			}
		}
		rows = append(rows, row)
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, map[string]any{
			"groups": rows,
			"theme":  n.ViewState.Snapshot(),
		})
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.View(rows, n.ViewState.ThemeMode(), n.ViewState.Variant())
	return nil
}

// resolveGroups maps category ids or names to group names.
func resolveGroups(categories []block.Category, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.EqualFold(strings.TrimSpace(ref), viewmodel.Uncategorized) {
			out = append(out, viewmodel.Uncategorized)
			continue
		}
		c, ok := block.ResolveCategory(categories, ref)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", ref)
		}
		out = append(out, c.Name)
	}
	return out, nil
}

// groupIDs returns the category ids shown under the given group names.
// Duplicate names share a group, so one name can map to several ids.
func groupIDs(categories []block.Category, groups []string) []string {
	var ids []string
	for _, name := range groups {
		if name == viewmodel.Uncategorized {
			ids = append(ids, viewmodel.UncategorizedID)
			continue
		}
		for _, c := range categories {
			if c.Name == name {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

func each(names []string, fn func(string) error) error {
	for _, name := range names {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}
