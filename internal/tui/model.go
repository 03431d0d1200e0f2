// Package tui renders a chiclet slicer in the terminal and binds keyboard and
// mouse input to the selection state machine.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/chiclet/internal/chiclet"
	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/core/slicer"
	"github.com/colonyops/chiclet/internal/core/styles"
	"github.com/colonyops/chiclet/internal/data/watch"
)

const (
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyEnter = "enter"
)

// Options configures the TUI.
type Options struct {
	Context context.Context
	// Changes delivers data file changes. Nil disables reloading.
	Changes <-chan watch.Event
	Logger  zerolog.Logger
}

// Model is the slicer TUI.
type Model struct {
	ctx     context.Context
	svc     *chiclet.Service
	machine *selection.Machine
	exec    *selection.Executor
	changes <-chan watch.Event
	log     zerolog.Logger

	view    *dataview.DataView
	res     *slicer.Result
	display []*slicer.DataPoint

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	width  int
	height int
	scroll int
	// cursor is the keyboard position in display order.
	cursor int
	// hovered is the source index of the hovered point, -1 when none.
	hovered int

	loading      bool
	loadingMore  bool
	restored     bool
	searchSeeded bool
	showHelp     bool
	quitting     bool
	err          error
}

// New creates a TUI model over svc.
func New(svc *chiclet.Service, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	input := textinput.New()
	input.Prompt = styles.IconSearch + " "
	input.Placeholder = "Search"
	inputStyles := input.Styles()
	inputStyles.Focused.Prompt = styles.SearchPromptStyle
	inputStyles.Blurred.Prompt = styles.SearchPromptStyle
	input.SetStyles(inputStyles)

	return Model{
		ctx:     ctx,
		svc:     svc,
		machine: selection.NewMachine(opts.Logger),
		exec:    selection.NewExecutor(svc.Store()),
		changes: opts.Changes,
		log:     opts.Logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		search:  input,
		hovered: -1,
		loading: true,
	}
}

// Init starts the first load, the spinner, and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadView(m.ctx, m.svc),
		m.spinner.Tick,
		waitForChange(m.changes),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case viewLoadedMsg:
		return m.handleViewLoaded(msg)
	case selectionResolvedMsg:
		return m.handleResolved(msg)
	case dataChangedMsg:
		m.log.Debug().Ctx(m.ctx).Str("path", msg.event.Path).Msg("data file changed")
		return m, tea.Batch(loadView(m.ctx, m.svc), waitForChange(m.changes))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m.handleClick(tea.Mouse(msg))
	case tea.MouseMotionMsg:
		return m.handleMotion(tea.Mouse(msg))
	case tea.MouseWheelMsg:
		return m.handleWheel(tea.Mouse(msg))
	}

	// Cursor blink and paste messages belong to the search box.
	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.search.SetWidth(max(msg.Width-4, 10))
	m.help.SetWidth(msg.Width)
	m.scroll = m.layout().scroll
	cmd := m.maybeLoadMore()
	return m, cmd
}

func (m Model) handleViewLoaded(msg viewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.more {
		m.loadingMore = false
	} else {
		m.loading = false
	}

	if msg.err != nil {
		m.err = msg.err
		m.log.Error().Ctx(m.ctx).Err(msg.err).Bool("more", msg.more).Msg("load data view")
		return m, nil
	}
	m.err = nil

	if !msg.more && m.view != nil && !dataview.SameCategoryIdentity(m.view, msg.view) {
		m.scroll = 0
		m.cursor = 0
		m.hovered = -1
	}
	m.view = msg.view

	if !m.searchSeeded {
		m.search.SetValue(chiclet.SearchText(msg.view))
		m.searchSeeded = true
	}

	restore := m.reconvert()
	more := m.maybeLoadMore()
	return m, tea.Batch(restore, more)
}

// handleResolved applies a host resolution. Accepted resolutions are folded
// into the view's saved selection and persisted.
func (m Model) handleResolved(msg selectionResolvedMsg) (tea.Model, tea.Cmd) {
	if !m.machine.Resolve(msg.res) {
		return m, nil
	}

	object := dataview.SelectionProperty.Object
	props := chiclet.SelectionProperties(m.view, msg.res.IDs)
	m.view = m.view.WithObjects(object, props)
	return m, persistProperties(m.ctx, m.svc, object, props)
}

// reconvert rebuilds data points from the current view and search text and
// binds them to the machine. The first successful bind restores the saved
// selection when the host store holds none.
func (m *Model) reconvert() tea.Cmd {
	res, err := m.svc.Convert(m.view, m.search.Value())
	if err != nil {
		m.err = err
		m.log.Error().Ctx(m.ctx).Err(err).Msg("convert data view")
		res = nil
	}
	m.res = res

	if res == nil {
		m.machine.Bind(nil, false, nil, false)
		m.display = nil
		m.hovered = -1
		return nil
	}

	gen := res.Settings.General
	m.machine.Bind(res.Points, gen.Multiselect, m.exec.Store().Selected(), res.HasSelectionOverride)
	if m.hovered >= 0 && !m.machine.HoverEnter(m.hovered) {
		m.hovered = -1
	}

	m.display = slicer.Arrange(res.Points, gen.ShowDisabled)
	m.cursor = clamp(m.cursor, 0, max(len(m.display)-1, 0))

	m.keys.Search.SetEnabled(gen.SelfFilterEnabled)
	if !gen.SelfFilterEnabled && m.search.Focused() {
		m.search.Blur()
	}

	return m.restoreSelection()
}

func (m *Model) restoreSelection() tea.Cmd {
	if m.restored {
		return nil
	}
	m.restored = true

	if m.exec.Store().HasSelection() {
		return nil
	}
	req, ok := m.machine.Restore(selection.SavedSelectionOf(m.view.Metadata))
	if !ok {
		return nil
	}
	return executeSelection(m.ctx, m.exec, req)
}

// maybeLoadMore requests the next segment once the end of the grid is on
// screen. Only one request is in flight at a time.
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.view == nil || m.res == nil || !m.view.Metadata.Segment {
		return nil
	}
	if m.loading || m.loadingMore || !m.layout().atEnd() {
		return nil
	}
	m.loadingMore = true
	return loadMoreView(m.ctx, m.svc)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.showHelp {
		switch {
		case keyStr == keyCtrlC:
			return m.quit()
		case keyStr == keyEsc, key.Matches(msg, m.keys.Help):
			m.showHelp = false
		}
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg, keyStr)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-m.layout().span)
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(m.layout().span)

	case key.Matches(msg, m.keys.Range):
		cmd := m.click(m.cursor, selection.Modifiers{Alt: true})
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		cmd := m.click(m.cursor, selection.Modifiers{})
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		cmd := m.click(m.cursor, selection.Modifiers{Ctrl: true})
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		cmd := m.clear()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		return m.quit()
	case keyEsc, keyEnter:
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	changed := m.searchChanged()
	return m, tea.Batch(cmd, changed)
}

// searchChanged persists the search text and re-runs the converter.
func (m *Model) searchChanged() tea.Cmd {
	object := dataview.SearchTextProperty.Object
	props := map[string]any{dataview.SearchTextProperty.Property: m.search.Value()}
	m.view = m.view.WithObjects(object, props)
	m.scroll = 0
	m.cursor = 0

	restore := m.reconvert()
	more := m.maybeLoadMore()
	return tea.Batch(persistProperties(m.ctx, m.svc, object, props), restore, more)
}

func (m Model) handleClick(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.clearButton().contains(mouse.X, mouse.Y) {
		cmd := m.clear()
		return m, cmd
	}

	pos, ok := m.layout().hit(mouse.X, mouse.Y)
	if !ok {
		return m, nil
	}
	m.setHover(pos)
	cmd := m.click(pos, modifiersOf(mouse.Mod))
	return m, cmd
}

func (m Model) handleMotion(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if pos, ok := m.layout().hit(mouse.X, mouse.Y); ok {
		m.setHover(pos)
		return m, nil
	}
	m.leaveHover()
	return m, nil
}

func (m Model) handleWheel(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	switch mouse.Button {
	case tea.MouseWheelDown, tea.MouseWheelRight:
		return m.scrollBy(1)
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		return m.scrollBy(-1)
	}
	return m, nil
}

func (m Model) moveCursor(dRow, dCol int) (tea.Model, tea.Cmd) {
	if len(m.display) == 0 {
		return m, nil
	}
	lay := m.layout()
	pos := lay.neighbor(m.cursor, dRow, dCol)
	m.setHover(pos)
	m.scroll = lay.scrollTo(pos)

	cmd := m.maybeLoadMore()
	return m, cmd
}

func (m Model) scrollBy(delta int) (tea.Model, tea.Cmd) {
	lay := m.layout()
	m.scroll = clamp(lay.scroll+delta, 0, lay.maxScroll)

	cmd := m.maybeLoadMore()
	return m, cmd
}

// setHover moves the cursor to pos and the hover mark to its point.
func (m *Model) setHover(pos int) {
	if pos < 0 || pos >= len(m.display) {
		return
	}
	m.cursor = pos

	idx := m.display[pos].Index
	if idx == m.hovered {
		return
	}
	m.leaveHover()
	if m.machine.HoverEnter(idx) {
		m.hovered = idx
	}
}

func (m *Model) leaveHover() {
	if m.hovered >= 0 {
		m.machine.HoverLeave(m.hovered)
		m.hovered = -1
	}
}

// click issues a primary click on the displayed point at pos.
func (m *Model) click(pos int, mods selection.Modifiers) tea.Cmd {
	if pos < 0 || pos >= len(m.display) {
		return nil
	}
	req, ok := m.machine.Click(m.display[pos].Index, mods)
	if !ok {
		return nil
	}
	return executeSelection(m.ctx, m.exec, req)
}

func (m *Model) clear() tea.Cmd {
	if m.res == nil {
		return nil
	}
	return executeSelection(m.ctx, m.exec, m.machine.ClearClick())
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// modifiersOf maps terminal modifiers onto click modifiers. Super counts as
// meta, which is how most terminals report the command key.
func modifiersOf(mod tea.KeyMod) selection.Modifiers {
	return selection.Modifiers{
		Ctrl: mod&tea.ModCtrl != 0,
		Meta: mod&(tea.ModMeta|tea.ModSuper) != 0,
		Alt:  mod&tea.ModAlt != 0,
	}
}
