package add

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
	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/store"
	"tableflip.dev/snip/pkg/viewstate"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	return app.New(p, zaptest.NewLogger(t))
}

func TestAddPrintsItsGroup(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	vs := viewstate.New()
	c, err := svc.AddCategory(ctx, "Shell", "green")
	require.NoError(t, err)
	_, _, err = svc.AddBlock(ctx, app.NewBlock{Title: "elsewhere", Content: "x"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	r := Add{
		Title:     "list",
		Content:   "ls -la",
		Category:  "shell",
		Raw:       true,
		Service:   svc,
		ViewState: vs,
		Out:       out,
	}
	require.NoError(t, r.Do(ctx))

	assert.Contains(t, out.String(), "Shell")
	assert.Contains(t, out.String(), "• list")
	assert.NotContains(t, out.String(), "elsewhere")
	// Categories the view has not seen yet open up.
	assert.True(t, vs.IsExpanded(c.Name))
}

func TestAddStructured(t *testing.T) {
	svc := newService(t)

	out := &bytes.Buffer{}
	r := Add{
		Title:   "greet",
		Content: "const x = 1;\nfunction f() {}",
		Service: svc,
		Format:  printers.FormatJSON,
		Out:     out,
	}
	require.NoError(t, r.Do(context.Background()))

	var got Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "greet", got.Block.Title)
	assert.Empty(t, got.Block.CategoryID)
	assert.Equal(t, classify.KindFencedCode, got.Classification.Kind)
	assert.Equal(t, "javascript", got.Classification.Language)

	stored, err := svc.Block(context.Background(), got.Block.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Classification.Output, stored.Content)
}

func TestAddRequiresTitle(t *testing.T) {
	r := Add{Title: "  ", Content: "x", Service: newService(t), Out: &bytes.Buffer{}}
	assert.Error(t, r.Do(context.Background()))
}
