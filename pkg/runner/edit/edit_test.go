package edit

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
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func ptr(s string) *string { return &s }

func TestEdit(t *testing.T) {
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	svc := app.New(p, zaptest.NewLogger(t))
	ctx := context.Background()
	c, err := svc.AddCategory(ctx, "Go", "")
	require.NoError(t, err)
	b, _, err := svc.AddBlock(ctx, app.NewBlock{Title: "loop", Content: "plain words", Raw: true})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	r := Edit{
		ID:       b.ID,
		Title:    ptr("range loop"),
		Category: ptr("go"),
		Service:  svc,
		Output:   printers.FormatJSON,
		Out:      out,
	}
	require.NoError(t, r.Do(ctx))

	var got block.Block
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "range loop", got.Title)
	assert.Equal(t, "plain words", got.Content)
	assert.Equal(t, c.ID, got.CategoryID)

	out.Reset()
	r = Edit{ID: b.ID, Category: ptr(""), Service: svc, Out: out}
	require.NoError(t, r.Do(ctx))
	assert.Contains(t, out.String(), "range loop")
	assert.Contains(t, out.String(), "Uncategorized")

	stored, err := svc.Block(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.CategoryID)
}

func TestEditNothing(t *testing.T) {
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	svc := app.New(p, zaptest.NewLogger(t))
	b, _, err := svc.AddBlock(context.Background(), app.NewBlock{Title: "t", Content: "c"})
	require.NoError(t, err)

	r := Edit{ID: b.ID, Service: svc, Out: &bytes.Buffer{}}
	assert.Error(t, r.Do(context.Background()))
}
