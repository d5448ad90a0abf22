package block

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NamedColor is one entry of the category colour palette.
type NamedColor struct {
	Name  string
	Value string
}

// DefaultColor is used for categories created without a colour.
const DefaultColor = "#2563eb"

// Palette returns the colours offered when creating a category.
func Palette() []NamedColor {
	return []NamedColor{
		{Name: "blue", Value: "#2563eb"},
		{Name: "green", Value: "#16a34a"},
		{Name: "red", Value: "#dc2626"},
		{Name: "purple", Value: "#9333ea"},
		{Name: "pink", Value: "#db2777"},
		{Name: "orange", Value: "#ea580c"},
		{Name: "yellow", Value: "#ca8a04"},
		{Name: "grey", Value: "#4b5563"},
	}
}

// ParseColor turns a palette name or hex string into a normalised "#rrggbb"
// token.
func ParseColor(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return DefaultColor, nil
	}
	for _, c := range Palette() {
		if strings.EqualFold(c.Name, token) {
			return c.Value, nil
		}
	}
	if !strings.HasPrefix(token, "#") {
		token = "#" + token
	}
	c, err := colorful.Hex(token)
	if err != nil {
		return "", fmt.Errorf("unknown colour %q", token)
	}
	return c.Hex(), nil
}
