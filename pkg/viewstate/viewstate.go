// Package viewstate holds the board's persisted UI state: which groups are
// expanded, which show previews, which categories are selected, and the theme.
package viewstate

import (
	"encoding/json"
	"fmt"
	"sync"

	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
)

// Keys under which the state is stored. Values are JSON.
const (
	KeyThemeMode    = "themeMode"
	KeyThemeVariant = "themeVariant"
	KeyExpanded     = "expandedCategories"
	KeyPreviews     = "categoryPreviews"
	KeySelected     = "selectedCategories"
	KeyAllSelected  = "allSelected"
)

// KV is the key/value store the state is persisted in. *diskv.Diskv
// satisfies it.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Has(key string) bool
}

// ViewState is loaded once at startup and written back on every change.
// Writes are last-writer-wins.
type ViewState struct {
	mu sync.Mutex
	kv KV

	mode     ThemeMode
	variant  string
	expanded map[string]bool
	previews map[string]bool
	selected []string

	hasSelection bool
	allSelected  bool
}

// New returns a ViewState with defaults and no backing store.
func New() *ViewState {
	return &ViewState{
		mode:        DefaultThemeMode(),
		variant:     DefaultVariant,
		expanded:    map[string]bool{},
		previews:    map[string]bool{},
		allSelected: true,
	}
}

// Load reads every key from kv. Missing keys keep their defaults.
func Load(kv KV) (*ViewState, error) {
	vs := New()
	vs.kv = kv
	if kv == nil {
		return vs, nil
	}

	var mode ThemeMode
	if ok, err := read(kv, KeyThemeMode, &mode); err != nil {
		return nil, err
	} else if ok && mode.Valid() {
		vs.mode = mode
	}
	var variant string
	if ok, err := read(kv, KeyThemeVariant, &variant); err != nil {
		return nil, err
	} else if ok && ValidVariant(variant) {
		vs.variant = variant
	}
	if _, err := read(kv, KeyExpanded, &vs.expanded); err != nil {
		return nil, err
	}
	if _, err := read(kv, KeyPreviews, &vs.previews); err != nil {
		return nil, err
	}
	ok, err := read(kv, KeySelected, &vs.selected)
	if err != nil {
		return nil, err
	}
	vs.hasSelection = ok
	if _, err := read(kv, KeyAllSelected, &vs.allSelected); err != nil {
		return nil, err
	}
	if vs.expanded == nil {
		vs.expanded = map[string]bool{}
	}
	if vs.previews == nil {
		vs.previews = map[string]bool{}
	}
	return vs, nil
}

func read(kv KV, key string, into any) (bool, error) {
	if !kv.Has(key) {
		return false, nil
	}
	data, err := kv.Read(key)
	if err != nil {
		return false, fmt.Errorf("viewstate: read %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("viewstate: decode %s: %w", key, err)
	}
	return true, nil
}

func (vs *ViewState) write(key string, value any) error {
	if vs.kv == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("viewstate: encode %s: %w", key, err)
	}
	if err := vs.kv.Write(key, data); err != nil {
		return fmt.Errorf("viewstate: write %s: %w", key, err)
	}
	return nil
}

// Reconcile fills in defaults for groups that have no state yet: collapsed,
// with previews visible. With no saved selection, or when every category was
// selected, the selection becomes SelectableIDs. Call it whenever the number
// of categories changes.
func (vs *ViewState) Reconcile(categories []block.Category) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	changedExpanded, changedPreviews := false, false
	for _, name := range viewmodel.GroupNames(categories) {
		if _, ok := vs.expanded[name]; !ok {
			vs.expanded[name] = false
			changedExpanded = true
		}
		if _, ok := vs.previews[name]; !ok {
			vs.previews[name] = true
			changedPreviews = true
		}
	}

	var errs []error
	if changedExpanded {
		errs = append(errs, vs.write(KeyExpanded, vs.expanded))
	}
	if changedPreviews {
		errs = append(errs, vs.write(KeyPreviews, vs.previews))
	}
	if !vs.hasSelection || vs.allSelected {
		ids := SelectableIDs(categories)
		if !vs.hasSelection || !sameIDs(ids, vs.selected) {
			errs = append(errs, vs.setSelected(ids, true))
		}
	}
	return firstErr(errs)
}

// ExpandUnseen expands groups that have no saved expanded state yet, then
// reconciles. Used after adding a block so new categories open up.
func (vs *ViewState) ExpandUnseen(categories []block.Category) error {
	vs.mu.Lock()
	changed := false
	for _, c := range categories {
		if _, ok := vs.expanded[c.Name]; ok {
			continue
		}
		vs.expanded[c.Name] = true
		changed = true
	}
	var err error
	if changed {
		err = vs.write(KeyExpanded, vs.expanded)
	}
	vs.mu.Unlock()

	if rerr := vs.Reconcile(categories); err == nil {
		err = rerr
	}
	return err
}

// IsExpanded reports whether group name is expanded. Unknown groups are
// collapsed.
func (vs *ViewState) IsExpanded(name string) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.expanded[name]
}

// ToggleExpanded flips the expanded state of group name.
func (vs *ViewState) ToggleExpanded(name string) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.expanded[name] = !vs.expanded[name]
	return vs.write(KeyExpanded, vs.expanded)
}

// SetExpanded sets the expanded state of group name.
func (vs *ViewState) SetExpanded(name string, expanded bool) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.expanded[name] = expanded
	return vs.write(KeyExpanded, vs.expanded)
}

// ExpandAll replaces the expanded map so every name is expanded.
func (vs *ViewState) ExpandAll(names []string) error {
	return vs.setAllExpanded(names, true)
}

// CollapseAll replaces the expanded map so every name is collapsed.
func (vs *ViewState) CollapseAll(names []string) error {
	return vs.setAllExpanded(names, false)
}

func (vs *ViewState) setAllExpanded(names []string, expanded bool) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	next := make(map[string]bool, len(names))
	for _, name := range names {
		next[name] = expanded
	}
	vs.expanded = next
	return vs.write(KeyExpanded, vs.expanded)
}

// PreviewVisible reports whether group name shows block previews. Unknown
// groups show them.
func (vs *ViewState) PreviewVisible(name string) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.previewVisible(name)
}

func (vs *ViewState) previewVisible(name string) bool {
	visible, ok := vs.previews[name]
	return !ok || visible
}

// TogglePreview flips preview visibility of group name.
func (vs *ViewState) TogglePreview(name string) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.previews[name] = !vs.previewVisible(name)
	return vs.write(KeyPreviews, vs.previews)
}

// ToggleAllPreviews hides every preview in names when all of them are
// visible, and shows all of them otherwise.
func (vs *ViewState) ToggleAllPreviews(names []string) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	allVisible := true
	for _, name := range names {
		if !vs.previewVisible(name) {
			allVisible = false
			break
		}
	}
	for _, name := range names {
		vs.previews[name] = !allVisible
	}
	return vs.write(KeyPreviews, vs.previews)
}

// Selected returns the selected category ids as a set.
func (vs *ViewState) Selected() viewmodel.IDSet {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return viewmodel.NewIDSet(vs.selected...)
}

// AllSelected reports whether the user last chose "select all".
func (vs *ViewState) AllSelected() bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.allSelected
}

// ToggleCategory adds or removes id from the selection. total is the number of
// selectable ids, used to remember whether everything is selected.
func (vs *ViewState) ToggleCategory(id string, total int) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	next := make([]string, 0, len(vs.selected)+1)
	found := false
	for _, s := range vs.selected {
		if s == id {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, id)
	}
	return vs.setSelected(next, len(next) == total)
}

// SetSelected replaces the selection. total is as for ToggleCategory.
func (vs *ViewState) SetSelected(ids []string, total int) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.setSelected(append([]string(nil), ids...), len(ids) == total)
}

// SelectAll selects every category.
func (vs *ViewState) SelectAll(categories []block.Category) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.setSelected(SelectableIDs(categories), true)
}

// DeselectAll clears the selection.
func (vs *ViewState) DeselectAll() error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.setSelected([]string{}, false)
}

func (vs *ViewState) setSelected(ids []string, all bool) error {
	vs.selected = ids
	vs.hasSelection = true
	vs.allSelected = all
	return firstErr([]error{
		vs.write(KeySelected, vs.selected),
		vs.write(KeyAllSelected, vs.allSelected),
	})
}

// Snapshot is a copy of the state for display and export.
type Snapshot struct {
	ThemeMode    ThemeMode       `json:"themeMode" yaml:"themeMode"`
	ThemeVariant string          `json:"themeVariant" yaml:"themeVariant"`
	Expanded     map[string]bool `json:"expandedCategories" yaml:"expandedCategories"`
	Previews     map[string]bool `json:"categoryPreviews" yaml:"categoryPreviews"`
	Selected     []string        `json:"selectedCategories" yaml:"selectedCategories"`
	AllSelected  bool            `json:"allSelected" yaml:"allSelected"`
}

// Snapshot copies the current state.
func (vs *ViewState) Snapshot() Snapshot {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	s := Snapshot{
		ThemeMode:    vs.mode,
		ThemeVariant: vs.variant,
		Expanded:     make(map[string]bool, len(vs.expanded)),
		Previews:     make(map[string]bool, len(vs.previews)),
		Selected:     append([]string{}, vs.selected...),
		AllSelected:  vs.allSelected,
	}
	for k, v := range vs.expanded {
		s.Expanded[k] = v
	}
	for k, v := range vs.previews {
		s.Previews[k] = v
	}
	return s
}

// SelectableIDs is every category id plus the Uncategorized sentinel, the
// selection "select all" produces.
func SelectableIDs(categories []block.Category) []string {
	ids := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return append(ids, viewmodel.UncategorizedID)
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := viewmodel.NewIDSet(a...)
	for _, id := range b {
		if !set.Has(id) {
			return false
		}
	}
	return true
}

func firstErr(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
