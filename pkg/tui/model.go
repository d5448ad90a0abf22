// Package tui is the interactive snippet board.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/logging"
	"tableflip.dev/snip/pkg/store"
	"tableflip.dev/snip/pkg/viewstate"
)

// row is one selectable line: a group header, or a block inside it.
type row struct {
	group int
	block *block.Block
}

// snapshotMsg carries the result of a load. gen identifies the load so late
// replies from superseded loads can be dropped.
type snapshotMsg struct {
	gen  int
	snap app.Snapshot
	err  error
}

type deletedMsg struct {
	title string
	err   error
}

type changedMsg struct{}

type subscribedMsg struct {
	events <-chan store.Event
}

// Model is the Bubble Tea model for the board.
type Model struct {
	ctx  context.Context
	svc  *app.Service
	vs   *viewstate.ViewState
	log  *zap.Logger
	opts app.BoardOptions

	gen     int
	loading bool
	loaded  bool
	snap    app.Snapshot
	board   app.Board
	rows    []row
	cursor  int
	offset  int

	watch   <-chan store.Event
	confirm *block.Block
	status  string
	err     error

	keys     keyMap
	help     help.Model
	styles   styles
	width    int
	height   int
	quitting bool
}

// Options configures New.
type Options struct {
	Board  app.BoardOptions
	Logger *zap.Logger
}

// New builds a board model. vs must not be nil.
func New(ctx context.Context, svc *app.Service, vs *viewstate.ViewState, opts Options) Model {
	m := Model{
		ctx:    ctx,
		svc:    svc,
		vs:     vs,
		log:    logging.OrNop(opts.Logger),
		opts:   opts.Board,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
		gen:    1,
	}
	m.loading = true
	m.styles = newStyles(vs.ThemeMode(), vs.Variant())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.gen), m.subscribe())
}

// load starts a snapshot load under a new generation.
func (m *Model) load() tea.Cmd {
	m.gen++
	m.loading = true
	return m.fetch(m.gen)
}

func (m *Model) fetch(gen int) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		snap, err := svc.Snapshot(ctx)
		return snapshotMsg{gen: gen, snap: snap, err: err}
	}
}

// subscribe listens for store changes when the backend supports it.
func (m *Model) subscribe() tea.Cmd {
	ctx, svc, log := m.ctx, m.svc, m.log
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			if !errors.Is(err, app.ErrWatchUnsupported) {
				log.Warn("watch store", zap.Error(err))
			}
			return nil
		}
		return subscribedMsg{events: ch}
	}
}

func waitForChange(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case snapshotMsg:
		if msg.gen != m.gen {
			m.log.Debug("dropping stale load", zap.Int("gen", msg.gen), zap.Int("current", m.gen))
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.snap = msg.snap
		m.organize()
		return m, nil

	case subscribedMsg:
		m.watch = msg.events
		return m, waitForChange(m.watch)

	case changedMsg:
		return m, tea.Batch(m.load(), waitForChange(m.watch))

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %q", msg.title)
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			target := *m.confirm
			m.confirm = nil
			return m, m.remove(target)
		case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
			m.confirm = nil
			m.status = "delete cancelled"
		}
		return m, nil
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Toggle):
		if name, ok := m.currentGroup(); ok {
			m.save(m.vs.ToggleExpanded(name))
		}
	case key.Matches(msg, m.keys.Preview):
		if name, ok := m.currentGroup(); ok {
			m.save(m.vs.TogglePreview(name))
		}
	case key.Matches(msg, m.keys.AllPreviews):
		m.save(m.vs.ToggleAllPreviews(m.groupNames()))
	case key.Matches(msg, m.keys.ExpandAll):
		m.save(m.vs.ExpandAll(m.groupNames()))
	case key.Matches(msg, m.keys.CollapseAll):
		m.save(m.vs.CollapseAll(m.groupNames()))
	case key.Matches(msg, m.keys.SelectAll):
		m.save(m.vs.SelectAll(m.snap.Categories))
	case key.Matches(msg, m.keys.SelectNone):
		m.save(m.vs.DeselectAll())
	case key.Matches(msg, m.keys.Theme):
		mode, err := m.vs.ToggleThemeMode()
		m.styles = newStyles(mode, m.vs.Variant())
		m.save(err)
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.currentRow(); ok && r.block != nil {
			b := *r.block
			m.confirm = &b
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) remove(b block.Block) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return deletedMsg{title: b.Title, err: svc.DeleteBlock(ctx, b.ID)}
	}
}

// save reorganizes after a view state change. The in-memory state is already
// updated when the write fails, so the board still reflects it.
func (m *Model) save(err error) {
	if err != nil {
		m.log.Warn("view state not saved", zap.Error(err))
		m.err = err
	}
	if m.loaded {
		m.organize()
	}
}

// organize rebuilds the board from the last snapshot, keeping the cursor on
// the same block or group when it is still visible.
func (m *Model) organize() {
	prev, hadPrev := m.currentKey()

	board, err := m.svc.Organize(m.snap, m.vs, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.board = board
	m.rows = make([]row, 0, len(board.Groups)+board.Count())
	for gi, g := range board.Groups {
		m.rows = append(m.rows, row{group: gi})
		if !g.Expanded {
			continue
		}
		for bi := range g.Blocks {
			m.rows = append(m.rows, row{group: gi, block: &board.Groups[gi].Blocks[bi]})
		}
	}

	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	if hadPrev {
		for i := range m.rows {
			if k, _ := m.keyAt(i); k == prev {
				m.cursor = i
				break
			}
		}
	}
	m.scroll()
}

func (m *Model) currentKey() (string, bool) {
	return m.keyAt(m.cursor)
}

func (m *Model) keyAt(i int) (string, bool) {
	if i < 0 || i >= len(m.rows) {
		return "", false
	}
	r := m.rows[i]
	if r.block != nil {
		return "b:" + r.block.ID, true
	}
	return "g:" + m.board.Groups[r.group].Name, true
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) currentGroup() (string, bool) {
	r, ok := m.currentRow()
	if !ok {
		return "", false
	}
	return m.board.Groups[r.group].Name, true
}

func (m *Model) groupNames() []string {
	return viewmodel.GroupNames(m.snap.Categories)
}

func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.scroll()
}

// Run starts the board and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service, vs *viewstate.ViewState, opts Options) error {
	if svc == nil || vs == nil {
		return errors.New("tui: service and view state are required")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, svc, vs, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
