package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/gridpick/gridpick/internal/format/table"
	"github.com/gridpick/gridpick/internal/grid"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping
}

// View implements tea.Model.
func (m *Model) View() string {
	if view := m.viewer.ErrorView(); view != "" {
		return m.viewStatic(view, styles.Error)
	}
	if m.loading {
		return m.viewStatic("Loading…", styles.Loading)
	}

	lines := make([]styledLine, 0, 16)
	if header := m.tabBar(); header != "" {
		lines = append(lines, styledLine{text: header, raw: true})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, m.bodyLines()...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "←/→/↑/↓ move  enter select  tab category  esc back  ctrl+c quit", style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + search prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		statusLine,
		{text: m.searchPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) viewStatic(message string, style *lipgloss.Style) string {
	if style != nil {
		return style.Render(message)
	}
	return message
}

// tabBar renders the category strip. During a live search the strip stays
// visible but dimmed, since the search spans every category.
func (m *Model) tabBar() string {
	tabs := m.viewer.Tabs()
	if len(tabs) == 0 {
		return ""
	}
	segments := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if !tab.Visible {
			continue
		}
		label := " " + m.viewer.RenderTab(tab) + " "
		style := styles.Tab
		switch {
		case !tab.Enabled || m.viewer.Searching():
			style = styles.DisabledTab
		case tab.Checked:
			style = styles.ActiveTab
		}
		if style != nil {
			label = style.Render(label)
		}
		segments = append(segments, label)
	}
	return strings.Join(segments, " ")
}

func (m *Model) bodyLines() []styledLine {
	if m.cellCount() == 0 {
		msg := "(no entries)"
		if m.viewer.Searching() {
			msg = fmt.Sprintf("No matches for %q", m.viewer.SearchText())
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	if m.mode == ModeMasonry && m.packer != nil {
		return m.masonryLines()
	}
	return m.gridLines()
}

// gridLines lays the rendered cells into aligned rows. The cursor cell gets
// an indicator prefix and its whole row the selected style, so the highlight
// tracks even when cell contents are uneven widths.
func (m *Model) gridLines() []styledLine {
	cells := m.renderer.Cells()
	perRow := m.renderer.PerRow()
	rowCount := (len(cells) + perRow - 1) / perRow
	cursorRow := m.cursor / perRow

	start, end := m.visibleRowRange(rowCount, cursorRow)
	rows := make([][]string, 0, end-start)
	for r := start; r < end; r++ {
		row := make([]string, perRow)
		for c := 0; c < perRow; c++ {
			idx := r*perRow + c
			if idx >= len(cells) {
				break
			}
			text := cells[idx].Rendered
			if idx == m.cursor && m.focus == FocusGrid {
				text = "▌" + text
			}
			row[c] = text
		}
		rows = append(rows, row)
	}

	formatted := table.Format(rows, nil)
	lines := make([]styledLine, len(formatted))
	for i, text := range formatted {
		style := styles.Item
		if start+i == cursorRow && m.focus == FocusGrid {
			style = styles.SelectedItem
		}
		lines[i] = styledLine{text: text, style: style}
	}
	return lines
}

// visibleRowRange clamps the row window to the available height, keeping the
// cursor row in view.
func (m *Model) visibleRowRange(rowCount, cursorRow int) (int, int) {
	max := m.maxBodyRows()
	if max <= 0 || rowCount <= max {
		return 0, rowCount
	}
	start := cursorRow - max/2
	if start < 0 {
		start = 0
	}
	if start+max > rowCount {
		start = rowCount - max
	}
	return start, start + max
}

func (m *Model) maxBodyRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // tab bar + separator + bottom bar
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// masonryLines renders the packed columns side by side. Tiles keep their
// packing order within each column, so the geometry the navigation index
// reasons about matches what is on screen.
func (m *Model) masonryLines() []styledLine {
	boxes := m.packer.Boxes()
	colWidth := int(m.packer.ColumnWidth())
	if colWidth < 1 {
		colWidth = 1
	}
	columns := make([][]string, m.packer.Columns())
	for i, box := range boxes {
		tile := m.renderTile(box, i == m.cursor && m.focus == FocusGrid, colWidth)
		if box.Col >= 0 && box.Col < len(columns) {
			columns[box.Col] = append(columns[box.Col], tile)
		}
	}
	rendered := make([]string, len(columns))
	for i, column := range columns {
		rendered[i] = strings.Join(column, "\n")
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	rows := strings.Split(joined, "\n")
	lines := make([]styledLine, len(rows))
	for i, row := range rows {
		lines[i] = styledLine{text: row, raw: true}
	}
	return lines
}

func (m *Model) renderTile(box grid.Box, selected bool, colWidth int) string {
	style := styles.Tile
	if selected {
		style = styles.SelectedTile
	}
	text := m.viewer.RenderItem(box.Item)
	if style == nil {
		return text
	}
	return style.Copy().Width(colWidth).Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
