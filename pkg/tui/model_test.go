package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/store"
	"tableflip.dev/snip/pkg/viewstate"
)

func newModel(t *testing.T, opts Options) (Model, *app.Service, *viewstate.ViewState) {
	t.Helper()
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	svc := app.New(p, zaptest.NewLogger(t))
	ctx := context.Background()

	for _, name := range []string{"Shell", "Go"} {
		_, err := svc.AddCategory(ctx, name, "")
		require.NoError(t, err)
	}
	for _, nb := range []app.NewBlock{
		{Title: "loop", Content: "for i := range n", Category: "Go"},
		{Title: "list", Content: "ls -la", Category: "Shell"},
		{Title: "note", Content: "remember the milk"},
	} {
		_, _, err := svc.AddBlock(ctx, nb)
		require.NoError(t, err)
	}

	vs := viewstate.New()
	opts.Logger = zaptest.NewLogger(t)
	m := New(ctx, svc, vs, opts)
	return deliver(t, m, m.fetch(m.gen)), svc, vs
}

// deliver runs cmd and feeds its message back into m.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func rowTitles(m Model) []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		if r.block != nil {
			out = append(out, "  "+r.block.Title)
			continue
		}
		out = append(out, m.board.Groups[r.group].Name)
	}
	return out
}

func TestInitialLoadShowsCollapsedGroups(t *testing.T) {
	m, _, _ := newModel(t, Options{})

	assert.True(t, m.loaded)
	assert.False(t, m.loading)
	assert.Equal(t, []string{"Go", "Shell", "Uncategorized"}, rowTitles(m))

	view := m.View()
	assert.Contains(t, view, "Go")
	assert.Contains(t, view, "Uncategorized")
	assert.Contains(t, view, "3 of 3 blocks")
}

func TestToggleExpandAndMove(t *testing.T) {
	m, _, vs := newModel(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, vs.IsExpanded("Go"))
	assert.Equal(t, []string{"Go", "  loop", "Shell", "Uncategorized"}, rowTitles(m))

	m = press(t, m, "jj")
	assert.Equal(t, 2, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, vs.IsExpanded("Shell"))
	assert.Equal(t, []string{"Go", "  loop", "Shell", "  list", "Uncategorized"}, rowTitles(m))

	m = press(t, m, "c")
	assert.Equal(t, []string{"Go", "Shell", "Uncategorized"}, rowTitles(m))
	assert.Equal(t, 1, m.cursor, "cursor stays on the Shell group")

	m = press(t, m, "e")
	assert.Len(t, m.rows, 6)
	assert.Contains(t, m.View(), "remember the milk")
}

func TestPreviewToggles(t *testing.T) {
	m, _, vs := newModel(t, Options{})

	m = press(t, m, "ep")
	assert.False(t, vs.PreviewVisible("Go"))
	assert.NotContains(t, m.View(), "for i := range n")
	assert.Contains(t, m.View(), "ls -la")

	m = press(t, m, "P")
	assert.True(t, vs.PreviewVisible("Go"))
	assert.True(t, vs.PreviewVisible("Shell"))
	m = press(t, m, "P")
	assert.False(t, vs.PreviewVisible("Uncategorized"))
	assert.NotContains(t, m.View(), "ls -la")
}

func TestSelectNoneHonoursPolicy(t *testing.T) {
	m, _, vs := newModel(t, Options{Board: app.BoardOptions{NoneWhenEmpty: true}})

	m = press(t, m, "n")
	assert.Empty(t, vs.Selected())
	assert.Empty(t, m.rows)
	assert.Contains(t, m.View(), "nothing to show")

	m = press(t, m, "a")
	assert.True(t, vs.AllSelected())
	assert.Len(t, m.rows, 3)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, svc, _ := newModel(t, Options{})
	m = press(t, m, "ej")
	require.NotNil(t, m.rows[m.cursor].block)
	target := *m.rows[m.cursor].block

	m = press(t, m, "d")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "y/n")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.confirm)
	_, err := svc.Block(context.Background(), target.ID)
	require.NoError(t, err)

	m = press(t, m, "d")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = next.(Model)
	m = deliver(t, m, cmd)
	assert.Contains(t, m.status, target.Title)

	_, err = svc.Block(context.Background(), target.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStaleLoadIsDropped(t *testing.T) {
	m, svc, _ := newModel(t, Options{})

	older := m.load()
	newer := m.load()
	oldMsg := older()

	_, _, err := svc.AddBlock(context.Background(), app.NewBlock{Title: "extra", Content: "more"})
	require.NoError(t, err)
	newMsg := newer()

	m = update(t, m, newMsg)
	assert.Equal(t, 4, m.board.Total)
	m = update(t, m, oldMsg)
	assert.Equal(t, 4, m.board.Total, "late reply from an older load is ignored")
	assert.False(t, m.loading)
}

func TestThemeToggle(t *testing.T) {
	m, _, vs := newModel(t, Options{})
	before := vs.ThemeMode()

	m = press(t, m, "t")
	assert.Equal(t, before.Toggle(), vs.ThemeMode())
	assert.Nil(t, m.err)
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t, Options{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
