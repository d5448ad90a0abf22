package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/viewstate"
)

// BoardOptions adjusts how the board is built. Categories overrides the saved
// selection with category ids or names.
type BoardOptions struct {
	Categories    []string
	All           bool
	NoneWhenEmpty bool
	TitleGlob     string
	Query         string
}

// BoardGroup is an organized group plus its view state.
type BoardGroup struct {
	viewmodel.Group `yaml:",inline"`

	Expanded bool `json:"expanded" yaml:"expanded"`
	Preview  bool `json:"preview" yaml:"preview"`
}

// Board is the grouped, filtered view of every block.
type Board struct {
	Groups     []BoardGroup     `json:"groups" yaml:"groups"`
	Categories []block.Category `json:"categories" yaml:"categories"`
	Selected   viewmodel.IDSet  `json:"-" yaml:"-"`
	Total      int              `json:"total" yaml:"total"`
}

// Count returns the number of blocks shown across all groups.
func (b Board) Count() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g.Blocks)
	}
	return n
}

// Board loads a snapshot and organizes it using the selection and per-group
// state in vs. vs may be nil, in which case everything is selected, collapsed,
// and previewed.
func (s *Service) Board(ctx context.Context, vs *viewstate.ViewState, opts BoardOptions) (Board, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Board{}, err
	}
	return s.Organize(snap, vs, opts)
}

// ExpandNewCategories opens the groups of categories vs has not seen yet. A
// failed view state write is logged, not returned.
func (s *Service) ExpandNewCategories(ctx context.Context, vs *viewstate.ViewState) {
	if vs == nil {
		return
	}
	cats, err := s.Categories(ctx)
	if err != nil {
		return
	}
	if err := vs.ExpandUnseen(cats); err != nil {
		s.log().Warn("view state not saved", zap.Error(err))
	}
}

// Organize builds a Board from an already loaded snapshot.
func (s *Service) Organize(snap Snapshot, vs *viewstate.ViewState, opts BoardOptions) (Board, error) {
	if vs != nil {
		if err := vs.Reconcile(snap.Categories); err != nil {
			s.log().Warn("view state not saved", zap.Error(err))
		}
	}

	selected, err := selection(snap.Categories, vs, opts)
	if err != nil {
		return Board{}, err
	}

	var vopts []viewmodel.Option
	if opts.NoneWhenEmpty {
		vopts = append(vopts, viewmodel.WithEmptySelection(viewmodel.ShowNone))
	}
	if opts.TitleGlob != "" {
		vopts = append(vopts, viewmodel.WithTitleGlob(opts.TitleGlob))
	}
	if opts.Query != "" {
		vopts = append(vopts, viewmodel.WithQuery(opts.Query))
	}

	groups := viewmodel.Organize(snap.Blocks, snap.Categories, selected, vopts...)
	board := Board{
		Groups:     make([]BoardGroup, 0, len(groups)),
		Categories: viewmodel.SortCategories(snap.Categories),
		Selected:   selected,
		Total:      len(snap.Blocks),
	}
	for _, g := range groups {
		bg := BoardGroup{Group: g, Preview: true}
		if vs != nil {
			bg.Expanded = vs.IsExpanded(g.Name)
			bg.Preview = vs.PreviewVisible(g.Name)
		}
		board.Groups = append(board.Groups, bg)
	}
	return board, nil
}

func selection(categories []block.Category, vs *viewstate.ViewState, opts BoardOptions) (viewmodel.IDSet, error) {
	switch {
	case opts.All:
		return viewmodel.NewIDSet(viewstate.SelectableIDs(categories)...), nil
	case len(opts.Categories) > 0:
		set := viewmodel.NewIDSet()
		for _, ref := range opts.Categories {
			if strings.EqualFold(strings.TrimSpace(ref), viewmodel.Uncategorized) {
				set[viewmodel.UncategorizedID] = struct{}{}
				continue
			}
			c, ok := block.ResolveCategory(categories, ref)
			if !ok {
				return nil, fmt.Errorf("app: unknown category %q", ref)
			}
			set[c.ID] = struct{}{}
		}
		return set, nil
	case vs != nil:
		return vs.Selected(), nil
	default:
		return viewmodel.NewIDSet(), nil
	}
}
