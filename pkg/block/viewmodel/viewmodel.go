// Package viewmodel turns flat block and category snapshots into the ordered,
// category-grouped view the board renders.
package viewmodel

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/snip/pkg/block"
)

// Uncategorized is the synthetic group for blocks whose category is missing.
const Uncategorized = "Uncategorized"

// UncategorizedID may be placed in a selection to admit blocks that resolve
// to the Uncategorized group.
const UncategorizedID = ""

// Group is one category heading with its ordered blocks. Category is nil for
// the Uncategorized group.
type Group struct {
	Name     string          `json:"name" yaml:"name"`
	Category *block.Category `json:"category,omitempty" yaml:"category,omitempty"`
	Blocks   []block.Block   `json:"blocks" yaml:"blocks"`
}

// EmptySelection decides what an empty category selection means.
type EmptySelection int

const (
	// ShowAll treats an empty selection as "no filter".
	ShowAll EmptySelection = iota
	// ShowNone treats an empty selection as "nothing selected".
	ShowNone
)

// IDSet is a set of category ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Option customises Organize behaviour.
type Option func(*organizeOptions)

type organizeOptions struct {
	empty     EmptySelection
	titleGlob string
	query     string
}

// WithEmptySelection sets the policy for an empty selection.
func WithEmptySelection(policy EmptySelection) Option {
	return func(opts *organizeOptions) {
		opts.empty = policy
	}
}

// WithTitleGlob keeps only blocks whose title matches the doublestar pattern.
// An invalid pattern matches nothing.
func WithTitleGlob(pattern string) Option {
	return func(opts *organizeOptions) {
		opts.titleGlob = strings.TrimSpace(pattern)
	}
}

// WithQuery keeps only blocks whose title or content contains text, ignoring
// case.
func WithQuery(text string) Option {
	return func(opts *organizeOptions) {
		opts.query = strings.ToLower(strings.TrimSpace(text))
	}
}

// Organize filters blocks by the selected category ids, groups them by
// category name and orders both the groups and the blocks inside them.
// Neither input slice is modified.
func Organize(blocks []block.Block, categories []block.Category, selected IDSet, opts ...Option) []Group {
	config := &organizeOptions{}
	for _, opt := range opts {
		opt(config)
	}
	if len(selected) == 0 && config.empty == ShowNone {
		return []Group{}
	}

	byID := make(map[string]*block.Category, len(categories))
	for i := range categories {
		c := categories[i]
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = &c
		}
	}

	groups := make(map[string]*Group)
	for _, b := range blocks {
		cat, known := byID[b.CategoryID]
		if b.CategoryID == "" {
			known = false
		}
		if len(selected) > 0 && !admitted(b, known, selected) {
			continue
		}
		if !config.matches(b) {
			continue
		}

		name := Uncategorized
		if known {
			name = cat.Name
		}
		g, ok := groups[name]
		if !ok {
			g = &Group{Name: name}
			if known {
				g.Category = firstNamed(categories, name)
			}
			groups[name] = g
		}
		g.Blocks = append(g.Blocks, b)
	}

	col := newCollator()
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		sortBlocks(col, g.Blocks)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return col.lessName(out[i].Name, out[j].Name)
	})
	return out
}

// GroupNames returns every group a board over categories can show, in board
// order, including Uncategorized.
func GroupNames(categories []block.Category) []string {
	seen := make(map[string]struct{}, len(categories)+1)
	names := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	if _, ok := seen[Uncategorized]; !ok {
		names = append(names, Uncategorized)
	}
	col := newCollator()
	sort.SliceStable(names, func(i, j int) bool {
		return col.lessName(names[i], names[j])
	})
	return names
}

// SortCategories orders categories by name the same way groups are ordered,
// without the Uncategorized rule. The input is left untouched.
func SortCategories(categories []block.Category) []block.Category {
	out := make([]block.Category, len(categories))
	copy(out, categories)
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if c := col.compare(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func admitted(b block.Block, known bool, selected IDSet) bool {
	if selected.Has(b.CategoryID) && b.CategoryID != "" {
		return true
	}
	return !known && selected.Has(UncategorizedID)
}

func (o *organizeOptions) matches(b block.Block) bool {
	if o.titleGlob != "" {
		ok, err := doublestar.Match(o.titleGlob, b.Title)
		if err != nil || !ok {
			return false
		}
	}
	if o.query != "" {
		if !strings.Contains(strings.ToLower(b.Title), o.query) &&
			!strings.Contains(strings.ToLower(b.Content), o.query) {
			return false
		}
	}
	return true
}

func firstNamed(categories []block.Category, name string) *block.Category {
	for i := range categories {
		if categories[i].Name == name {
			c := categories[i]
			return &c
		}
	}
	return nil
}

func sortBlocks(col *collator, blocks []block.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if c := col.compare(blocks[i].Title, blocks[j].Title); c != 0 {
			return c < 0
		}
		return blocks[i].ID < blocks[j].ID
	})
}

// collator wraps a root-locale collator. A collate.Collator keeps internal
// buffers, so each Organize call builds its own.
type collator struct {
	c *collate.Collator
}

func newCollator() *collator {
	return &collator{c: collate.New(language.Und)}
}

func (c *collator) compare(a, b string) int {
	if r := c.c.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

func (c *collator) lessName(a, b string) bool {
	switch {
	case a == b:
		return false
	case a == Uncategorized:
		return false
	case b == Uncategorized:
		return true
	}
	return c.compare(a, b) < 0
}
