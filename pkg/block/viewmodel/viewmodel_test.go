package viewmodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"tableflip.dev/snip/pkg/block"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func names(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}

func titles(g Group) []string {
	out := make([]string, len(g.Blocks))
	for i, b := range g.Blocks {
		out[i] = b.Title
	}
	return out
}

func TestOrganizeEmpty(t *testing.T) {
	got := Organize(nil, nil, NewIDSet())
	if len(got) != 0 {
		t.Fatalf("expected no groups, got %v", names(got))
	}
}

func TestOrganizeOrdersGroupsAndBlocks(t *testing.T) {
	categories := []block.Category{
		{ID: "1", Name: "B"},
		{ID: "2", Name: "A"},
	}
	blocks := []block.Block{
		{ID: "x", Title: "Z", CategoryID: "1"},
		{ID: "y", Title: "Y", CategoryID: "2"},
	}

	got := Organize(blocks, categories, NewIDSet("1", "2"))

	want := []Group{
		{Name: "A", Category: &categories[1], Blocks: []block.Block{blocks[1]}},
		{Name: "B", Category: &categories[0], Blocks: []block.Block{blocks[0]}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}

func TestOrganizeUncategorizedIsLast(t *testing.T) {
	categories := []block.Category{
		{ID: "v", Name: "Zzz"},
		{ID: "w", Name: "aaa"},
	}
	blocks := []block.Block{
		{ID: "1", Title: "orphan", CategoryID: "deleted"},
		{ID: "2", Title: "late", CategoryID: "v"},
		{ID: "3", Title: "early", CategoryID: "w"},
		{ID: "4", Title: "loose"},
	}

	got := Organize(blocks, categories, NewIDSet())

	if diff := cmp.Diff([]string{"aaa", "Zzz", Uncategorized}, names(got)); diff != "" {
		t.Fatalf("unexpected group order (-want +got):\n%s", diff)
	}
	last := got[len(got)-1]
	if last.Category != nil {
		t.Fatalf("Uncategorized group should carry no category, got %+v", last.Category)
	}
	if diff := cmp.Diff([]string{"loose", "orphan"}, titles(last)); diff != "" {
		t.Fatalf("unexpected Uncategorized blocks (-want +got):\n%s", diff)
	}
}

func TestOrganizeCollatesCaseInsensitively(t *testing.T) {
	categories := []block.Category{{ID: "c", Name: "Snippets"}}
	blocks := []block.Block{
		{ID: "1", Title: "beta", CategoryID: "c"},
		{ID: "2", Title: "Alpha", CategoryID: "c"},
		{ID: "3", Title: "alpha", CategoryID: "c"},
		{ID: "4", Title: "Charlie", CategoryID: "c"},
	}
	got := Organize(blocks, categories, NewIDSet())
	if len(got) != 1 {
		t.Fatalf("expected one group, got %v", names(got))
	}
	if diff := cmp.Diff([]string{"alpha", "Alpha", "beta", "Charlie"}, titles(got[0])); diff != "" {
		t.Fatalf("unexpected block order (-want +got):\n%s", diff)
	}
}

func TestOrganizeSelection(t *testing.T) {
	categories := []block.Category{
		{ID: "go", Name: "Go"},
		{ID: "sql", Name: "SQL"},
	}
	blocks := []block.Block{
		{ID: "1", Title: "errgroup", CategoryID: "go"},
		{ID: "2", Title: "join", CategoryID: "sql"},
		{ID: "3", Title: "scratch"},
	}

	tests := map[string]struct {
		selected IDSet
		opts     []Option
		want     []string
	}{
		"empty selection shows all by default": {
			selected: NewIDSet(),
			want:     []string{"Go", "SQL", Uncategorized},
		},
		"empty selection can show nothing": {
			selected: NewIDSet(),
			opts:     []Option{WithEmptySelection(ShowNone)},
			want:     []string{},
		},
		"single category": {
			selected: NewIDSet("sql"),
			want:     []string{"SQL"},
		},
		"uncategorized sentinel": {
			selected: NewIDSet("go", UncategorizedID),
			want:     []string{"Go", Uncategorized},
		},
		"unknown ids select nothing": {
			selected: NewIDSet("nope"),
			want:     []string{},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Organize(blocks, categories, tc.selected, tc.opts...)
			if diff := cmp.Diff(tc.want, names(got)); diff != "" {
				t.Fatalf("unexpected groups (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrganizeStaleSelectedIDFallsIntoUncategorized(t *testing.T) {
	blocks := []block.Block{{ID: "1", Title: "ghost", CategoryID: "gone"}}
	got := Organize(blocks, nil, NewIDSet("gone"))
	if diff := cmp.Diff([]string{Uncategorized}, names(got)); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
}

func TestOrganizeCategoriesNotLoaded(t *testing.T) {
	blocks := []block.Block{
		{ID: "1", Title: "b", CategoryID: "x"},
		{ID: "2", Title: "a", CategoryID: "y"},
	}
	got := Organize(blocks, []block.Category{}, NewIDSet())
	if len(got) != 1 || got[0].Name != Uncategorized {
		t.Fatalf("expected everything in Uncategorized, got %v", names(got))
	}
	if diff := cmp.Diff([]string{"a", "b"}, titles(got[0])); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestOrganizeDuplicateNamesMerge(t *testing.T) {
	categories := []block.Category{
		{ID: "first", Name: "Dup", Color: "#111111"},
		{ID: "second", Name: "Dup", Color: "#222222"},
	}
	blocks := []block.Block{
		{ID: "1", Title: "two", CategoryID: "second"},
		{ID: "2", Title: "one", CategoryID: "first"},
	}
	got := Organize(blocks, categories, NewIDSet())
	if len(got) != 1 {
		t.Fatalf("expected merged group, got %v", names(got))
	}
	if got[0].Category == nil || got[0].Category.ID != "first" {
		t.Fatalf("expected first category to represent the group, got %+v", got[0].Category)
	}
	if diff := cmp.Diff([]string{"one", "two"}, titles(got[0])); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestOrganizeFilters(t *testing.T) {
	categories := []block.Category{{ID: "c", Name: "Cmds"}}
	blocks := []block.Block{
		{ID: "1", Title: "git/rebase", Content: "git rebase -i", CategoryID: "c"},
		{ID: "2", Title: "git/stash", Content: "git stash pop", CategoryID: "c"},
		{ID: "3", Title: "docker/prune", Content: "docker system prune", CategoryID: "c"},
	}

	got := Organize(blocks, categories, NewIDSet(), WithTitleGlob("git/*"))
	if len(got) != 1 {
		t.Fatalf("expected one group, got %v", names(got))
	}
	if diff := cmp.Diff([]string{"git/rebase", "git/stash"}, titles(got[0])); diff != "" {
		t.Fatalf("unexpected glob result (-want +got):\n%s", diff)
	}

	got = Organize(blocks, categories, NewIDSet(), WithQuery("PRUNE"))
	if len(got) != 1 || len(got[0].Blocks) != 1 || got[0].Blocks[0].ID != "3" {
		t.Fatalf("unexpected query result: %+v", got)
	}
}

func TestOrganizeIsIdempotentAndDoesNotMutate(t *testing.T) {
	categories := []block.Category{
		{ID: "1", Name: "Beta"},
		{ID: "2", Name: "alpha"},
	}
	blocks := []block.Block{
		{ID: "a", Title: "zeta", CategoryID: "1"},
		{ID: "b", Title: "eta", CategoryID: "2"},
		{ID: "c", Title: "theta", CategoryID: "1"},
		{ID: "d", Title: "iota"},
	}
	blocksBefore := append([]block.Block(nil), blocks...)
	categoriesBefore := append([]block.Category(nil), categories...)
	sel := NewIDSet()

	first := Organize(blocks, categories, sel)
	second := Organize(blocks, categories, sel)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Organize is not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(blocksBefore, blocks); diff != "" {
		t.Fatalf("blocks input mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(categoriesBefore, categories); diff != "" {
		t.Fatalf("categories input mutated (-before +after):\n%s", diff)
	}
}

func TestGroupNames(t *testing.T) {
	categories := []block.Category{
		{ID: "1", Name: "beta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "beta"},
	}
	if diff := cmp.Diff([]string{"Alpha", "beta", Uncategorized}, GroupNames(categories)); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{Uncategorized}, GroupNames(nil)); diff != "" {
		t.Fatalf("unexpected names for no categories (-want +got):\n%s", diff)
	}
}

func TestSortCategories(t *testing.T) {
	in := []block.Category{{ID: "1", Name: "b"}, {ID: "2", Name: "A"}}
	got := SortCategories(in)
	if got[0].ID != "2" || in[0].ID != "1" {
		t.Fatalf("unexpected sort %+v (input %+v)", got, in)
	}
}
