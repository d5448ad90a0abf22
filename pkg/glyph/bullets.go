// Package glyph holds the symbols the board is drawn with.
package glyph

// Glyph is a symbol and what it stands for on the board.
type Glyph struct {
	Symbol  string
	Meaning string
}

const (
	Collapsed = "▸"
	Expanded  = "▾"
	Bullet    = "•"
	Swatch    = "■"
	Cursor    = "›"
	On        = "✔"
	Off       = "·"
	Ellipsis  = "…"
)

// Marker is the group header symbol for the expanded state.
func Marker(expanded bool) string {
	if expanded {
		return Expanded
	}
	return Collapsed
}

// Legend lists the board symbols in display order.
func Legend() []Glyph {
	return []Glyph{
		{Symbol: Collapsed, Meaning: "collapsed group"},
		{Symbol: Expanded, Meaning: "expanded group"},
		{Symbol: Swatch, Meaning: "category colour"},
		{Symbol: Bullet, Meaning: "block"},
	}
}
