package view

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/store"
	"tableflip.dev/snip/pkg/viewstate"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

type fixture struct {
	svc    *app.Service
	vs     *viewstate.ViewState
	shell  block.Category
	golang block.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	f := &fixture{svc: app.New(p, zaptest.NewLogger(t)), vs: viewstate.New()}
	ctx := context.Background()
	f.shell, err = f.svc.AddCategory(ctx, "Shell", "green")
	require.NoError(t, err)
	f.golang, err = f.svc.AddCategory(ctx, "Go", "blue")
	require.NoError(t, err)
	return f
}

func (f *fixture) run(t *testing.T, action Action, all bool, names ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	r := View{
		Action:    action,
		Names:     names,
		All:       all,
		Service:   f.svc,
		ViewState: f.vs,
		Out:       out,
	}
	err := r.Do(context.Background())
	return out.String(), err
}

func TestExpandAndCollapse(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, ActionExpand, false, "shell")
	require.NoError(t, err)
	assert.True(t, f.vs.IsExpanded("Shell"))
	assert.False(t, f.vs.IsExpanded("Go"))

	_, err = f.run(t, ActionExpand, true)
	require.NoError(t, err)
	for _, name := range []string{"Go", "Shell", viewmodel.Uncategorized} {
		assert.True(t, f.vs.IsExpanded(name), name)
	}

	_, err = f.run(t, ActionCollapse, false, "uncategorized")
	require.NoError(t, err)
	assert.False(t, f.vs.IsExpanded(viewmodel.Uncategorized))
}

func TestPreviewToggles(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, ActionPreview, false, "Go")
	require.NoError(t, err)
	assert.False(t, f.vs.PreviewVisible("Go"))
	assert.True(t, f.vs.PreviewVisible("Shell"))

	// Not every preview is visible, so --all shows them all.
	_, err = f.run(t, ActionPreview, true)
	require.NoError(t, err)
	assert.True(t, f.vs.PreviewVisible("Go"))
}

func TestSelection(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, ActionDeselect, false, "Go")
	require.NoError(t, err)
	sel := f.vs.Selected()
	assert.False(t, sel.Has(f.golang.ID))
	assert.True(t, sel.Has(f.shell.ID))
	assert.True(t, sel.Has(viewmodel.UncategorizedID))
	assert.False(t, f.vs.AllSelected())

	_, err = f.run(t, ActionSelect, false, "Go")
	require.NoError(t, err)
	assert.True(t, f.vs.AllSelected())

	_, err = f.run(t, ActionSelectNone, false)
	require.NoError(t, err)
	assert.Empty(t, f.vs.Selected())
	assert.False(t, f.vs.AllSelected())

	_, err = f.run(t, ActionSelectAll, false)
	require.NoError(t, err)
	assert.Len(t, f.vs.Selected(), 3)
}

func TestNamesRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, ActionExpand, false)
	assert.Error(t, err)

	_, err = f.run(t, ActionExpand, false, "Rust")
	assert.EqualError(t, err, `unknown category "Rust"`)
}

func TestShowStructured(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.vs.SetExpanded("Go", true))

	out := &bytes.Buffer{}
	r := View{Action: ActionShow, Service: f.svc, ViewState: f.vs, Format: printers.FormatJSON, Out: out}
	require.NoError(t, r.Do(context.Background()))

	var got struct {
		Groups []printers.ViewRow `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Groups, 3)
	assert.Equal(t, "Go", got.Groups[0].Name)
	assert.True(t, got.Groups[0].Expanded)
	assert.True(t, got.Groups[0].Selected)
	assert.Equal(t, "#2563eb", got.Groups[0].Color)
	assert.Equal(t, viewmodel.Uncategorized, got.Groups[2].Name)
	assert.Empty(t, got.Groups[2].Color)
}
