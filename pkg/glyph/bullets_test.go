package glyph

import "testing"

func TestMarker(t *testing.T) {
	if got := Marker(true); got != Expanded {
		t.Errorf("Marker(true) = %q, want %q", got, Expanded)
	}
	if got := Marker(false); got != Collapsed {
		t.Errorf("Marker(false) = %q, want %q", got, Collapsed)
	}
}

func TestLegendHasNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, g := range Legend() {
		if seen[g.Symbol] {
			t.Errorf("duplicate symbol %q", g.Symbol)
		}
		seen[g.Symbol] = true
	}
}
