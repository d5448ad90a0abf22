package viewstate

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ThemeMode is light or dark.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Toggle returns the other mode.
func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DefaultVariant is used until one is chosen.
const DefaultVariant = "default"

// Variant is a named colour theme with an accent per mode.
type Variant struct {
	ID    string
	Name  string
	Light string
	Dark  string
}

// Accent returns the accent colour for mode.
func (v Variant) Accent(mode ThemeMode) string {
	if mode == ThemeDark {
		return v.Dark
	}
	return v.Light
}

var variants = []Variant{
	{ID: "upnexxt", Name: "UpNexxt", Light: "#0f766e", Dark: "#2dd4bf"},
	{ID: "default", Name: "Default", Light: "#2563eb", Dark: "#60a5fa"},
	{ID: "nature", Name: "Nature", Light: "#15803d", Dark: "#4ade80"},
	{ID: "sunset", Name: "Sunset", Light: "#ea580c", Dark: "#fb923c"},
	{ID: "ocean", Name: "Ocean", Light: "#0369a1", Dark: "#38bdf8"},
	{ID: "lavender", Name: "Lavender", Light: "#7c3aed", Dark: "#a78bfa"},
	{ID: "forest", Name: "Forest", Light: "#166534", Dark: "#22c55e"},
	{ID: "autumn", Name: "Autumn", Light: "#b45309", Dark: "#f59e0b"},
	{ID: "cherry", Name: "Cherry", Light: "#be123c", Dark: "#fb7185"},
	{ID: "slate", Name: "Slate", Light: "#475569", Dark: "#94a3b8"},
	{ID: "midnight", Name: "Midnight", Light: "#1e3a8a", Dark: "#818cf8"},
	{ID: "modern", Name: "Modern", Light: "#18181b", Dark: "#e4e4e7"},
	{ID: "classic", Name: "Classic", Light: "#7f1d1d", Dark: "#fca5a5"},
	{ID: "code", Name: "Code", Light: "#065f46", Dark: "#34d399"},
	{ID: "playful", Name: "Playful", Light: "#c026d3", Dark: "#f0abfc"},
}

// Variants lists every theme variant in display order.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// LookupVariant finds a variant by id, ignoring case.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range variants {
		if strings.EqualFold(v.ID, id) {
			return v, true
		}
	}
	return Variant{}, false
}

// ValidVariant reports whether id names a known variant.
func ValidVariant(id string) bool {
	_, ok := LookupVariant(id)
	return ok
}

// DefaultThemeMode follows the terminal background.
func DefaultThemeMode() ThemeMode {
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeMode returns the current mode.
func (vs *ViewState) ThemeMode() ThemeMode {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.mode
}

// Variant returns the current variant.
func (vs *ViewState) Variant() Variant {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	v, ok := LookupVariant(vs.variant)
	if !ok {
		v, _ = LookupVariant(DefaultVariant)
	}
	return v
}

// ToggleThemeMode flips between light and dark and returns the new mode.
func (vs *ViewState) ToggleThemeMode() (ThemeMode, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.mode = vs.mode.Toggle()
	return vs.mode, vs.write(KeyThemeMode, vs.mode)
}

// SetThemeMode sets the mode.
func (vs *ViewState) SetThemeMode(mode ThemeMode) error {
	if !mode.Valid() {
		return fmt.Errorf("viewstate: unknown theme mode %q", mode)
	}
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.mode = mode
	return vs.write(KeyThemeMode, vs.mode)
}

// SetThemeVariant sets the variant by id.
func (vs *ViewState) SetThemeVariant(id string) error {
	v, ok := LookupVariant(id)
	if !ok {
		return fmt.Errorf("viewstate: unknown theme variant %q", id)
	}
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.variant = v.ID
	return vs.write(KeyThemeVariant, vs.variant)
}
