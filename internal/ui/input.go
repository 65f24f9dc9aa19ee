package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateSearchCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.searchCur, cmd = m.searchCur.Update(msg)
	return cmd
}

// handleTextInput consumes key presses that edit the search field. It only
// runs while the search field has focus.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+u":
		if m.searchText == "" {
			return false, nil
		}
		return true, m.setSearchText("")
	case "ctrl+w":
		if m.searchText == "" {
			return false, nil
		}
		return true, m.deleteSearchWordBackward()
	case "ctrl+a":
		if m.searchPos == 0 {
			return false, nil
		}
		m.searchPos = 0
		m.cursorDirty = true
		return true, nil
	case "ctrl+e":
		end := len([]rune(m.searchText))
		if m.searchPos == end {
			return false, nil
		}
		m.searchPos = end
		m.cursorDirty = true
		return true, nil
	case "alt+b":
		next := m.wordBackwardPos()
		if next == m.searchPos {
			return false, nil
		}
		m.searchPos = next
		m.cursorDirty = true
		return true, nil
	case "alt+f":
		next := m.wordForwardPos()
		if next == m.searchPos {
			return false, nil
		}
		m.searchPos = next
		m.cursorDirty = true
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.deleteSearchRuneBackward()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return true, m.insertSearchText(string(msg.Runes))
	case tea.KeySpace:
		return true, m.insertSearchText(" ")
	case tea.KeyLeft:
		if m.searchPos == 0 {
			return false, nil
		}
		m.searchPos--
		m.cursorDirty = true
		return true, nil
	case tea.KeyRight:
		if m.searchPos >= len([]rune(m.searchText)) {
			return false, nil
		}
		m.searchPos++
		m.cursorDirty = true
		return true, nil
	}
	return false, nil
}

func (m *Model) insertSearchText(text string) tea.Cmd {
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	next := make([]rune, 0, len(runes)+len(text))
	next = append(next, runes[:pos]...)
	next = append(next, []rune(text)...)
	next = append(next, runes[pos:]...)
	m.searchPos = pos + len([]rune(text))
	return m.applySearchText(string(next))
}

func (m *Model) deleteSearchRuneBackward() (bool, tea.Cmd) {
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	if pos == 0 {
		return false, nil
	}
	next := append(append([]rune{}, runes[:pos-1]...), runes[pos:]...)
	m.searchPos = pos - 1
	return true, m.applySearchText(string(next))
}

func (m *Model) deleteSearchWordBackward() tea.Cmd {
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	next := append(append([]rune{}, runes[:i]...), runes[pos:]...)
	m.searchPos = i
	return m.applySearchText(string(next))
}

// setSearchText replaces the whole field, moving the edit cursor to the end.
func (m *Model) setSearchText(text string) tea.Cmd {
	m.searchPos = len([]rune(text))
	return m.applySearchText(text)
}

// applySearchText pushes the new field contents into the viewer. A changed
// query arms the debounce timer; an empty query restores the snapshot
// category, which needs an immediate refresh so the old tab's items reappear.
func (m *Model) applySearchText(text string) tea.Cmd {
	m.searchText = text
	m.cursorDirty = true
	m.errMsg = ""
	tok, changed := m.viewer.OnSearchTextChanged(text)
	if !changed {
		return nil
	}
	return m.searchDebounceCmd(tok)
}

func (m *Model) wordBackwardPos() int {
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func (m *Model) wordForwardPos() int {
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

func clampPos(pos, max int) int {
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}

func (m *Model) searchPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.searchCur.Style = styles.Cursor.Copy()
	}
	if styles.Search != nil {
		m.searchCur.TextStyle = styles.Search.Copy()
	} else {
		m.searchCur.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.SearchPrompt != nil {
		prompt = styles.SearchPrompt.Render(prompt)
	}
	if m.focus != FocusSearch {
		return prompt + render(styles.Search, m.searchText)
	}
	if m.searchText == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		caretRune := string(runes[0])
		rest := string(runes[1:])
		if styles.SearchPlaceholder != nil {
			m.searchCur.TextStyle = styles.SearchPlaceholder.Copy()
		}
		caret := m.renderSearchCursor(caretRune)
		return prompt + caret + render(styles.SearchPlaceholder, rest)
	}
	runes := []rune(m.searchText)
	pos := clampPos(m.searchPos, len(runes))
	before := render(styles.Search, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderSearchCursor(caretRune)
	after := ""
	if pos < len(runes) {
		after = render(styles.Search, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderSearchCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.searchCur.SetChar(char)

	base := m.searchCur.TextStyle.Copy()
	base = base.Inline(true)

	if m.searchCur.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
