package block

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"empty uses default": {in: "", want: DefaultColor},
		"palette name":       {in: "Green", want: "#16a34a"},
		"hex":                {in: "#DC2626", want: "#dc2626"},
		"hex without hash":   {in: "9333ea", want: "#9333ea"},
		"short hex":          {in: "#fff", want: "#ffffff"},
		"garbage":            {in: "not-a-colour", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseColor(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPatchApply(t *testing.T) {
	b := Block{ID: "1", Title: "old", Content: "body", CategoryID: "c1"}
	p := Patch{Title: String("new"), CategoryID: String("")}
	got := p.Apply(b)
	if got.Title != "new" || got.Content != "body" || got.CategoryID != "" {
		t.Fatalf("unexpected patch result: %+v", got)
	}
	if b.Title != "old" {
		t.Fatalf("Apply mutated its input")
	}
	if !(Patch{}).Empty() {
		t.Fatalf("zero patch should be empty")
	}
}

func TestResolveCategory(t *testing.T) {
	cats := []Category{{ID: "a1", Name: "Go"}, {ID: "b2", Name: "SQL"}}
	if c, ok := ResolveCategory(cats, "b2"); !ok || c.Name != "SQL" {
		t.Fatalf("expected lookup by id, got %+v %v", c, ok)
	}
	if c, ok := ResolveCategory(cats, "go"); !ok || c.ID != "a1" {
		t.Fatalf("expected lookup by name, got %+v %v", c, ok)
	}
	if _, ok := ResolveCategory(cats, " "); ok {
		t.Fatalf("blank reference should not resolve")
	}
}

func TestValidate(t *testing.T) {
	if err := (Block{Title: "t"}).Validate(); err == nil {
		t.Fatalf("expected missing content error")
	}
	if err := (Block{Title: "t", Content: "c"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Category{Name: "x", Color: "nope"}).Validate(); err == nil {
		t.Fatalf("expected colour error")
	}
}
