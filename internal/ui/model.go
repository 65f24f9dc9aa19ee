package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridpick/gridpick/internal/grid"
	"github.com/gridpick/gridpick/internal/picker"
	"github.com/gridpick/gridpick/internal/recents"
	"github.com/gridpick/gridpick/internal/theme"
	"github.com/gridpick/gridpick/internal/ui/command"
)

// Mode selects the layout engine for the active dataset.
type Mode int

const (
	// ModeGrid lays fixed-size items into rows; navigation is row/column
	// arithmetic.
	ModeGrid Mode = iota
	// ModeMasonry packs variable-size items into shortest-column order;
	// navigation is geometric.
	ModeMasonry
)

// Focus identifies which surface receives key input.
type Focus int

const (
	FocusSearch Focus = iota
	FocusGrid
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries everything the model needs from the application layer.
type Options struct {
	Viewer     *picker.Viewer
	Kind       string
	Columns    int
	Spacing    float64
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Store      recents.Store
	Watcher    *recents.Watcher
}

// Model implements the Bubble Tea model for the item picker.
type Model struct {
	viewer *picker.Viewer
	mode   Mode

	sched    *grid.Scheduler
	renderer *grid.Renderer
	packer   *grid.Packer
	columns  int
	spacing  float64
	cursor   int

	focus       Focus
	searchText  string
	searchPos   int
	searchCur   cursor.Model
	cursorDirty bool

	loading    bool
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	store    recents.Store
	watcher  *recents.Watcher
	bus      *command.Bus
	focusGen uint64
	closed   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around a picker viewer.
func NewModel(opts Options) *Model {
	m := &Model{
		viewer:     opts.Viewer,
		sched:      &grid.Scheduler{},
		columns:    opts.Columns,
		spacing:    opts.Spacing,
		focus:      FocusSearch,
		loading:    true,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		store:      opts.Store,
		watcher:    opts.Watcher,
		bus:        command.New(),
	}
	if opts.Kind == "kaomoji" {
		m.mode = ModeMasonry
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.renderer = grid.NewRenderer(
		m.viewer.ItemsPerRow(),
		m.viewer.RenderItem,
		func() bool { return !m.closed },
		m.sched,
	)
	if m.mode == ModeMasonry {
		m.packer = grid.NewPacker(m.columns, m.spacing)
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Search != nil {
		c.TextStyle = styles.Search.Copy()
	}
	c.SetChar(" ")
	m.searchCur = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDatasetCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForRecentsEvent(m.watcher))
	}
	if cmd := m.searchCur.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateSearchCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(datasetLoadedMsg{}):  m.handleDatasetLoadedMsg,
		reflect.TypeOf(searchDebounceMsg{}): m.handleSearchDebounceMsg,
		reflect.TypeOf(renderStepMsg{}):     m.handleRenderStepMsg,
		reflect.TypeOf(layoutRetryMsg{}):    m.handleLayoutRetryMsg,
		reflect.TypeOf(focusRestoreMsg{}):   m.handleFocusRestoreMsg,
		reflect.TypeOf(recentsEventMsg{}):   m.handleRecentsEventMsg,
		reflect.TypeOf(selectionMsg{}):      m.handleSelectionMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.cursorDirty {
		m.cursorDirty = false
		m.searchCur.Blink = false
		if cmd := m.searchCur.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleDatasetLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(datasetLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	if loaded.err != nil {
		return nil
	}
	return m.refresh()
}

func (m *Model) handleSearchDebounceMsg(msg tea.Msg) tea.Cmd {
	debounce, ok := msg.(searchDebounceMsg)
	if !ok {
		return nil
	}
	if !m.viewer.FireSearch(debounce.tok) {
		return nil
	}
	return m.refresh()
}

func (m *Model) handleRenderStepMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(renderStepMsg); !ok {
		return nil
	}
	if m.sched.Tick() {
		return renderStepCmd()
	}
	return nil
}

func (m *Model) handleLayoutRetryMsg(msg tea.Msg) tea.Cmd {
	retry, ok := msg.(layoutRetryMsg)
	if !ok || m.packer == nil {
		return nil
	}
	m.packer.FireRetry(retry.tok)
	return nil
}

func (m *Model) handleFocusRestoreMsg(msg tea.Msg) tea.Cmd {
	restore, ok := msg.(focusRestoreMsg)
	if !ok || restore.gen != m.focusGen {
		return nil
	}
	m.focusSearch()
	return nil
}

func (m *Model) handleRecentsEventMsg(msg tea.Msg) tea.Cmd {
	event, ok := msg.(recentsEventMsg)
	if !ok {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if m.watcher != nil {
		cmds = append(cmds, waitForRecentsEvent(m.watcher))
	}
	if event.evt.Err == nil {
		if reloader, ok := m.store.(*recents.FileStore); ok {
			_ = reloader.Reload()
		}
		if m.viewer.ActiveCategory() == picker.RecentsID && !m.viewer.Searching() {
			if cmd := m.refresh(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSelectionMsg(msg tea.Msg) tea.Cmd {
	selection, ok := msg.(selectionMsg)
	if !ok {
		return nil
	}
	if m.verbose {
		m.setInfo(selection.payload)
	}
	m.closed = true
	m.focusGen++
	m.viewer.Destroy()
	return tea.Quit
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if m.packer != nil {
		m.packer.SetWidth(float64(m.width))
		if tok, ok := m.packer.PendingRetry(); ok {
			return layoutRetryCmd(tok)
		}
	}
	return nil
}

// refresh resolves the visible set and restarts the layout pipeline under a
// fresh render session.
func (m *Model) refresh() tea.Cmd {
	if m.viewer.Err() != nil {
		return nil
	}
	items, session := m.viewer.FilterAndRender()
	m.cursor = 0
	m.sched.Cancel()
	m.renderer.Begin(items, session)
	if m.packer != nil {
		m.packer = grid.NewPacker(m.columns, m.spacing)
		m.packer.SetWidth(float64(m.width))
		m.packer.AddItems(items)
		if tok, ok := m.packer.PendingRetry(); ok {
			return tea.Batch(renderStepCmd(), layoutRetryCmd(tok))
		}
	}
	return renderStepCmd()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func (m *Model) focusSearch() {
	if m.focus == FocusSearch {
		return
	}
	m.focus = FocusSearch
	m.cursorDirty = true
}

// Quit tears down cooperative work before the program exits.
func (m *Model) Quit() {
	m.closed = true
	m.focusGen++
	m.sched.Cancel()
	m.viewer.Destroy()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// delayedFocusRestore schedules handing focus back to the search field. The
// generation guard drops restores that a later tab switch superseded.
func (m *Model) delayedFocusRestore() tea.Cmd {
	m.focusGen++
	gen := m.focusGen
	return tea.Tick(picker.FocusRestoreDelay, func(time.Time) tea.Msg {
		return focusRestoreMsg{gen: gen}
	})
}
