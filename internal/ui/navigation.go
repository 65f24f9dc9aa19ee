package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/grid"
	"github.com/gridpick/gridpick/internal/logging/events"
	"github.com/gridpick/gridpick/internal/picker"
	"github.com/gridpick/gridpick/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		return m.handleEscape()
	case "tab":
		return m.cycleTab(1)
	case "shift+tab":
		return m.cycleTab(-1)
	}
	if m.loading || m.viewer.Err() != nil {
		return nil
	}
	switch key.Type {
	case tea.KeyEnter:
		return m.activateCursor()
	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
		if cmd, handled := m.handleArrow(key); handled {
			return cmd
		}
	}
	if m.focus == FocusSearch {
		if handled, cmd := m.handleTextInput(key); handled {
			return cmd
		}
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.Quit()
	return tea.Quit
}

// handleEscape backs out one layer at a time: a live search first, then the
// picker itself.
func (m *Model) handleEscape() tea.Cmd {
	if m.viewer.Searching() || m.searchText != "" {
		return m.setSearchText("")
	}
	if m.viewer.ShowBack() {
		m.viewer.RequestBack()
	}
	return m.quit()
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	if m.loading || m.viewer.Err() != nil {
		return nil
	}
	next := picker.NextTab(m.viewer.Tabs(), m.viewer.ActiveCategory(), delta, m.viewer.TabScrollMode())
	return m.selectTab(next)
}

// selectTab activates a category tab. The viewer clears any live search when
// switching, so local input state is reset to match, and focus returns to the
// search field after a short delay.
func (m *Model) selectTab(id string) tea.Cmd {
	if !m.viewer.SetActiveCategory(id) {
		return nil
	}
	m.searchText = ""
	m.searchPos = 0
	return tea.Batch(m.refresh(), m.delayedFocusRestore())
}

// handleArrow routes arrow keys to either the search field or the layout
// engine, honoring edge hand-off in both directions.
func (m *Model) handleArrow(key tea.KeyMsg) (tea.Cmd, bool) {
	if m.focus == FocusSearch {
		if key.Type == tea.KeyDown && m.cellCount() > 0 {
			m.focus = FocusGrid
			events.UI.GridCursor(m.cursor)
			return nil, true
		}
		// Left/Right edit the search cursor; Up has nowhere to go.
		return nil, false
	}
	dir, ok := arrowDirection(key.Type)
	if !ok {
		return nil, false
	}
	next, propagate := m.move(dir)
	if propagate && dir == grid.DirUp {
		m.focusSearch()
		events.UI.FocusSearch()
		return nil, true
	}
	if next != m.cursor {
		m.cursor = next
		events.UI.GridCursor(next)
	}
	return nil, true
}

func arrowDirection(t tea.KeyType) (grid.Direction, bool) {
	switch t {
	case tea.KeyLeft:
		return grid.DirLeft, true
	case tea.KeyRight:
		return grid.DirRight, true
	case tea.KeyUp:
		return grid.DirUp, true
	case tea.KeyDown:
		return grid.DirDown, true
	}
	return 0, false
}

func (m *Model) move(dir grid.Direction) (int, bool) {
	if m.mode == ModeMasonry && m.packer != nil {
		return m.packer.Move(m.cursor, dir)
	}
	return m.renderer.Move(m.cursor, dir)
}

func (m *Model) cellCount() int {
	if m.mode == ModeMasonry && m.packer != nil {
		return len(m.packer.Boxes())
	}
	return len(m.renderer.Cells())
}

func (m *Model) cursorItem() (dataset.Item, bool) {
	if m.mode == ModeMasonry && m.packer != nil {
		boxes := m.packer.Boxes()
		if m.cursor < 0 || m.cursor >= len(boxes) {
			return dataset.Item{}, false
		}
		return boxes[m.cursor].Item, true
	}
	cells := m.renderer.Cells()
	if m.cursor < 0 || m.cursor >= len(cells) {
		return dataset.Item{}, false
	}
	return cells[m.cursor].Item, true
}

func (m *Model) activateCursor() tea.Cmd {
	item, ok := m.cursorItem()
	if !ok {
		return nil
	}
	return m.bus.Execute(command.Request{
		Item: item,
		Handler: func(it dataset.Item) tea.Msg {
			m.viewer.Activate(it)
			return selectionMsg{payload: it.Payload}
		},
	})
}
