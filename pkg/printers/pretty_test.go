package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testBoard() app.Board {
	goCat := &block.Category{ID: "c1", Name: "Go", Color: "#16a34a"}
	return app.Board{
		Total: 3,
		Groups: []app.BoardGroup{
			{
				Group: viewmodel.Group{Name: "Go", Category: goCat, Blocks: []block.Block{
					{ID: "b1", Title: "loop", Content: "for i := range n {}"},
				}},
				Expanded: true,
				Preview:  true,
			},
			{
				Group: viewmodel.Group{Name: viewmodel.Uncategorized, Blocks: []block.Block{
					{ID: "b2", Title: "note", Content: "remember the milk"},
				}},
				Expanded: false,
				Preview:  true,
			},
		},
	}
}

func TestBoardCollapsedGroupsShowOnlyHeader(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Board(testBoard())
	out := buf.String()

	for _, want := range []string{"▾ ■ Go - 1 block", "  • loop", "for i := range n {}", "▸ ■ Uncategorized - 1 block", "1 blocks hidden"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "note") {
		t.Errorf("collapsed group printed its blocks:\n%s", out)
	}
}

func TestBoardHiddenPreview(t *testing.T) {
	b := testBoard()
	b.Groups[0].Preview = false

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Board(b)

	if strings.Contains(buf.String(), "range n") {
		t.Errorf("hidden preview printed content:\n%s", buf.String())
	}
}

func TestBoardExpandAllAndIDs(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ExpandAll: true, ShowID: true}
	pp.Board(testBoard())
	out := buf.String()

	for _, want := range []string{"b1", "b2", "note", "remember the milk"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Board(app.Board{})
	if !strings.Contains(buf.String(), "none") {
		t.Errorf("empty board = %q", buf.String())
	}
}

func TestCategoriesTable(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Categories([]block.Category{{ID: "c1", Name: "Go", Color: "#16a34a"}}, map[string]int{"c1": 4})
	out := buf.String()

	for _, want := range []string{"NAME", "Go", "#16a34a", "4", "c1"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownRender(t *testing.T) {
	md, err := NewMarkdown("dark", 60)
	if err != nil {
		t.Fatalf("NewMarkdown: %v", err)
	}
	out, err := md.Render("# Heading\n\nsome text")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "text") {
		t.Errorf("rendered = %q", out)
	}
}
