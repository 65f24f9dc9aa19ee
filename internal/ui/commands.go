package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridpick/gridpick/internal/grid"
	"github.com/gridpick/gridpick/internal/logging"
	"github.com/gridpick/gridpick/internal/recents"
)

// datasetLoadedMsg mirrors the async dataset load response.
type datasetLoadedMsg struct {
	err error
}

// searchDebounceMsg delivers a debounce token after its quiet period.
type searchDebounceMsg struct {
	tok grid.Token
}

// renderStepMsg drives one cooperative unit of layout work.
type renderStepMsg struct{}

// layoutRetryMsg delivers a deferred masonry retry token.
type layoutRetryMsg struct {
	tok grid.RetryToken
}

// focusRestoreMsg hands focus back to the search field after a tab switch.
type focusRestoreMsg struct {
	gen uint64
}

// recentsEventMsg carries one recents file watcher observation.
type recentsEventMsg struct {
	evt recents.Event
}

// selectionMsg reports a completed item activation.
type selectionMsg struct {
	payload string
}

func (m *Model) loadDatasetCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.viewer.Load()
		if err != nil {
			logging.Error(err)
		}
		return datasetLoadedMsg{err: err}
	}
}

func (m *Model) searchDebounceCmd(tok grid.Token) tea.Cmd {
	return tea.Tick(m.viewer.DebounceInterval(), func(time.Time) tea.Msg {
		return searchDebounceMsg{tok: tok}
	})
}

func renderStepCmd() tea.Cmd {
	return func() tea.Msg {
		return renderStepMsg{}
	}
}

func layoutRetryCmd(tok grid.RetryToken) tea.Cmd {
	return tea.Tick(grid.RetryDelay, func(time.Time) tea.Msg {
		return layoutRetryMsg{tok: tok}
	})
}

func waitForRecentsEvent(w *recents.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return nil
		}
		return recentsEventMsg{evt: evt}
	}
}
