package picker

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RecentsID is the identifier of the virtual category backed by the recents
// store rather than the dataset. When present it is always first.
const RecentsID = "recents"

// TabScroll selects how tab cycling behaves at the ends of the tab list.
type TabScroll int

const (
	TabScrollClamp TabScroll = iota
	TabScrollWrap
)

// Tab is the UI wrapper over one category.
type Tab struct {
	ID      string
	Title   string
	Visible bool
	Enabled bool
	Checked bool
	Recents bool
}

var titleCaser = cases.Title(language.English)

func buildTabs(categories []string, hasRecents bool) []Tab {
	tabs := make([]Tab, 0, len(categories)+1)
	if hasRecents {
		tabs = append(tabs, Tab{
			ID:      RecentsID,
			Title:   "Recents",
			Visible: true,
			Enabled: true,
			Recents: true,
		})
	}
	for _, category := range categories {
		tabs = append(tabs, Tab{
			ID:      category,
			Title:   titleCaser.String(category),
			Visible: true,
			Enabled: true,
		})
	}
	return tabs
}

// NextTab returns the tab id delta steps away from active, skipping disabled
// and hidden tabs, clamping or wrapping per mode.
func NextTab(tabs []Tab, active string, delta int, mode TabScroll) string {
	if len(tabs) == 0 || delta == 0 {
		return active
	}
	idx := -1
	for i, tab := range tabs {
		if tab.ID == active {
			idx = i
			break
		}
	}
	if idx < 0 {
		return active
	}
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	current := idx
	for moved := 0; moved < delta; {
		candidate := current + step
		if candidate < 0 || candidate >= len(tabs) {
			if mode != TabScrollWrap {
				break
			}
			candidate = (candidate + len(tabs)) % len(tabs)
		}
		if candidate == idx {
			break
		}
		current = candidate
		if tabs[current].Visible && tabs[current].Enabled {
			moved++
		}
	}
	if !tabs[current].Visible || !tabs[current].Enabled {
		return active
	}
	return tabs[current].ID
}
