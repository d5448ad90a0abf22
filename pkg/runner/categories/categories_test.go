package categories

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/store"
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

func TestListCountsBlocks(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	shell, err := svc.AddCategory(ctx, "Shell", "green")
	require.NoError(t, err)
	golang, err := svc.AddCategory(ctx, "Go", "blue")
	require.NoError(t, err)
	for _, title := range []string{"ls", "cd"} {
		_, _, err := svc.AddBlock(ctx, app.NewBlock{Title: title, Content: "x", Category: shell.ID})
		require.NoError(t, err)
	}

	out := &bytes.Buffer{}
	r := List{Service: svc, Format: printers.FormatJSON, Out: out}
	require.NoError(t, r.Do(ctx))

	var got []Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	want := []Summary{
		{ID: golang.ID, Name: "Go", Color: "#2563eb", Blocks: 0},
		{ID: shell.ID, Name: "Shell", Color: "#16a34a", Blocks: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected summaries (-want +got):\n%s", diff)
	}
}

func TestEditLeavesNilFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.AddCategory(ctx, "Shell", "green")
	require.NoError(t, err)

	name := "Bash"
	out := &bytes.Buffer{}
	r := Edit{Ref: "shell", Name: &name, Service: svc, Out: out}
	require.NoError(t, r.Do(ctx))

	c, err := svc.Category(ctx, "bash")
	require.NoError(t, err)
	assert.Equal(t, "#16a34a", c.Color)
	assert.Contains(t, out.String(), "Bash updated")
}

func TestRemove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.AddCategory(ctx, "Empty", "")
	require.NoError(t, err)
	used, err := svc.AddCategory(ctx, "Used", "")
	require.NoError(t, err)
	_, _, err = svc.AddBlock(ctx, app.NewBlock{Title: "t", Content: "x", Category: used.ID})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	declined := Remove{
		Ref:     "Empty",
		Confirm: func(string) (bool, error) { return false, nil },
		Service: svc,
		Out:     out,
	}
	require.NoError(t, declined.Do(ctx))
	assert.Equal(t, "kept Empty\n", out.String())

	r := Remove{Ref: "Used", Service: svc, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, r.Do(ctx), store.ErrCategoryInUse)

	out.Reset()
	r = Remove{Ref: "Empty", Service: svc, Out: out}
	require.NoError(t, r.Do(ctx))
	assert.Equal(t, "deleted Empty\n", out.String())

	_, err = svc.Category(ctx, "Empty")
	assert.Error(t, err)
}
