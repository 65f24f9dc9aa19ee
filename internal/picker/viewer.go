package picker

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/grid"
	"github.com/gridpick/gridpick/internal/logging/events"
	"github.com/gridpick/gridpick/internal/recents"
)

// FocusRestoreDelay is how long the viewer asks the host to wait before
// handing focus back to the search field after a tab switch, so the restore
// does not race the click that triggered the switch.
const FocusRestoreDelay = 100 * time.Millisecond

// Predicate decides whether an item matches a normalized search query.
type Predicate func(it dataset.Item, query string) bool

// Config is the immutable construction-time configuration for a Viewer.
type Config struct {
	// Source is the dataset location on disk.
	Source string
	// Parser converts the raw dataset into an ordered item list.
	Parser dataset.Parser
	// Recents backs the virtual Recents category; nil disables it.
	Recents recents.Store
	// ItemsPerRow is the fixed grid column count.
	ItemsPerRow int
	// CategoryAttr names the item attribute holding the grouping key.
	CategoryAttr string
	// SortCategories orders tabs lexicographically instead of by first
	// appearance.
	SortCategories bool
	// TabScroll selects clamping or wrapping tab cycling.
	TabScroll TabScroll
	// Search overrides the default fuzzy predicate.
	Search Predicate
	// RenderItem produces the cell text for an item; an empty result skips
	// that item.
	RenderItem func(dataset.Item) string
	// RenderTab overrides the default tab title rendering.
	RenderTab func(Tab) string
	// Payload builds the value published with ItemSelected.
	Payload func(dataset.Item) interface{}
	// SearchDebounce overrides the default quiet period.
	SearchDebounce time.Duration
	// ShowBack enables the back affordance.
	ShowBack bool
}

func (c Config) validate() *ConfigurationError {
	var missing []string
	if c.Source == "" {
		missing = append(missing, "Source")
	}
	if c.Parser == nil {
		missing = append(missing, "Parser")
	}
	if c.ItemsPerRow < 1 {
		missing = append(missing, "ItemsPerRow")
	}
	if c.CategoryAttr == "" {
		missing = append(missing, "CategoryAttr")
	}
	if c.RenderItem == nil {
		missing = append(missing, "RenderItem")
	}
	if c.Payload == nil {
		missing = append(missing, "Payload")
	}
	if len(missing) == 0 {
		return nil
	}
	return &ConfigurationError{Missing: missing}
}

// DefaultSearch matches the normalized query against the item's payload and
// keywords, fuzzily first and by substring as a fallback.
func DefaultSearch(it dataset.Item, query string) bool {
	haystack := it.SearchText()
	if fuzzy.MatchNormalizedFold(query, haystack) {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), query)
}

// Viewer owns the category tabs, the active-category/search state machine,
// data loading, and filtering. Exactly one of active category or live search
// governs the visible set at any time; the pre-search category is remembered
// so clearing the search restores it.
type Viewer struct {
	cfg     Config
	confErr *ConfigurationError

	loaded     bool
	loadErr    *LoadError
	items      []dataset.Item
	categories []string
	tabs       []Tab

	active        string
	search        string
	savedCategory string

	tracker  grid.Tracker
	debounce *grid.Debouncer
	notify   *notifier

	destroyed bool
}

// New constructs a viewer. Missing required configuration puts the instance
// into a permanent error state rather than failing construction, so the host
// can show the static error view.
func New(cfg Config) *Viewer {
	v := &Viewer{
		cfg:      cfg,
		confErr:  cfg.validate(),
		debounce: grid.NewDebouncer(cfg.SearchDebounce),
		notify:   newNotifier(),
	}
	if v.cfg.Search == nil {
		v.cfg.Search = DefaultSearch
	}
	return v
}

// Err returns the terminal error governing the instance, if any.
func (v *Viewer) Err() error {
	if v.confErr != nil {
		return v.confErr
	}
	if v.loadErr != nil {
		return v.loadErr
	}
	return nil
}

// Load fetches and parses the dataset exactly once. Subsequent calls return
// the first outcome; a failed load is terminal for the instance.
func (v *Viewer) Load() error {
	if v.confErr != nil {
		return v.confErr
	}
	if v.loaded {
		return v.Err()
	}
	v.loaded = true
	raw, err := os.ReadFile(v.cfg.Source)
	if err != nil {
		v.loadErr = &LoadError{Source: v.cfg.Source, Err: err}
		return v.loadErr
	}
	items, err := v.cfg.Parser.Parse(raw)
	if err != nil {
		v.loadErr = &LoadError{Source: v.cfg.Source, Err: err}
		return v.loadErr
	}
	v.items = items
	v.categories = v.deriveCategories(items)
	v.tabs = buildTabs(v.categories, v.cfg.Recents != nil)
	if v.cfg.Recents != nil {
		v.setActive(RecentsID)
	} else if len(v.categories) > 0 {
		v.setActive(v.categories[0])
	}
	events.App.DatasetLoaded(v.cfg.Source, len(items), len(v.categories))
	return nil
}

// deriveCategories collects the unique category set, preserving first
// appearance order unless lexicographic sorting is configured.
func (v *Viewer) deriveCategories(items []dataset.Item) []string {
	seen := make(map[string]struct{}, 16)
	ordered := make([]string, 0, 16)
	for _, it := range items {
		category := it.Attr(v.cfg.CategoryAttr)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		ordered = append(ordered, category)
	}
	if v.cfg.SortCategories {
		sort.Strings(ordered)
	}
	return ordered
}

// Tabs returns the ordered tab list.
func (v *Viewer) Tabs() []Tab {
	return v.tabs
}

// ActiveCategory returns the checked tab's id.
func (v *Viewer) ActiveCategory() string {
	return v.active
}

// Searching reports whether a live search governs the visible set.
func (v *Viewer) Searching() bool {
	return v.search != ""
}

// SearchText returns the normalized live query.
func (v *Viewer) SearchText() string {
	return v.search
}

// ShowBack reports whether the back affordance is configured.
func (v *Viewer) ShowBack() bool {
	return v.cfg.ShowBack
}

// TabScrollMode returns the configured tab cycling behavior.
func (v *Viewer) TabScrollMode() TabScroll {
	return v.cfg.TabScroll
}

// ItemsPerRow returns the fixed grid column count.
func (v *Viewer) ItemsPerRow() int {
	return v.cfg.ItemsPerRow
}

// RenderItem invokes the configured per-item render function.
func (v *Viewer) RenderItem(it dataset.Item) string {
	return v.cfg.RenderItem(it)
}

// RenderTab renders one tab label.
func (v *Viewer) RenderTab(tab Tab) string {
	if v.cfg.RenderTab != nil {
		return v.cfg.RenderTab(tab)
	}
	return tab.Title
}

// SetActiveCategory activates a tab. Switching clears any live search. The
// return value tells the host whether a filter+render pass (and a delayed
// focus restore) is due.
func (v *Viewer) SetActiveCategory(id string) bool {
	if v.destroyed || v.Err() != nil {
		return false
	}
	if id == v.active && v.search == "" {
		return false
	}
	if !v.knownTab(id) {
		return false
	}
	v.search = ""
	v.savedCategory = ""
	v.setActive(id)
	events.UI.TabSelect(id)
	return true
}

func (v *Viewer) knownTab(id string) bool {
	for _, tab := range v.tabs {
		if tab.ID == id {
			return tab.Visible && tab.Enabled
		}
	}
	return false
}

// setActive updates exactly one tab's checked flag.
func (v *Viewer) setActive(id string) {
	v.active = id
	for i := range v.tabs {
		v.tabs[i].Checked = v.tabs[i].ID == id
	}
}

// OnSearchTextChanged normalizes the query and advances the search state
// machine. Rendering is not triggered here: the returned debounce token is
// scheduled by the host and handed back to FireSearch after the quiet
// period. changed is false for no-op edits.
func (v *Viewer) OnSearchTextChanged(text string) (tok grid.Token, changed bool) {
	if v.destroyed || v.Err() != nil {
		return grid.Token{}, false
	}
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == v.search {
		return grid.Token{}, false
	}
	if v.search == "" && normalized != "" {
		v.savedCategory = v.active
	}
	if normalized == "" && v.search != "" {
		restored := v.savedCategory
		v.savedCategory = ""
		v.search = ""
		if restored != "" {
			v.setActive(restored)
		}
		events.Search.Cleared(restored)
		return v.debounce.Trigger(), true
	}
	v.search = normalized
	events.Search.Changed(normalized)
	return v.debounce.Trigger(), true
}

// FireSearch reports whether the token's quiet period elapsed undisturbed
// and the pending filter+render pass should run now.
func (v *Viewer) FireSearch(tok grid.Token) bool {
	if v.debounce.Fire(tok) {
		events.Search.Debounced(tok.ID())
		return true
	}
	events.Search.Stale(tok.ID())
	return false
}

// DebounceInterval returns the quiet period the host should schedule for.
func (v *Viewer) DebounceInterval() time.Duration {
	return v.debounce.Interval()
}

// VisibleItems resolves the working set: a live search filters the entire
// dataset across categories; the Recents tab reads the live store; any other
// tab filters by category equality.
func (v *Viewer) VisibleItems() []dataset.Item {
	if v.Err() != nil {
		return nil
	}
	if v.search != "" {
		filtered := make([]dataset.Item, 0, 32)
		for _, it := range v.items {
			if v.cfg.Search(it, v.search) {
				filtered = append(filtered, it)
			}
		}
		return filtered
	}
	if v.active == RecentsID && v.cfg.Recents != nil {
		return v.cfg.Recents.Recents()
	}
	filtered := make([]dataset.Item, 0, 32)
	for _, it := range v.items {
		if it.Attr(v.cfg.CategoryAttr) == v.active {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// FilterAndRender resolves the working set and mints the session governing
// its render pass, superseding any pass still in flight.
func (v *Viewer) FilterAndRender() ([]dataset.Item, *grid.Session) {
	return v.VisibleItems(), v.tracker.Next()
}

// Activate records the item into recents, builds the configured payload, and
// publishes ItemSelected.
func (v *Viewer) Activate(it dataset.Item) {
	if v.destroyed || v.Err() != nil {
		return
	}
	if v.cfg.Recents != nil {
		v.cfg.Recents.Add(it)
	}
	v.notify.publishItem(ItemSelected{Item: it, Payload: v.cfg.Payload(it)})
}

// RequestBack publishes BackRequested.
func (v *Viewer) RequestBack() {
	if v.destroyed {
		return
	}
	events.UI.Back()
	v.notify.publishBack(BackRequested{})
}

// SubscribeItemSelected registers a selection listener.
func (v *Viewer) SubscribeItemSelected(fn func(ItemSelected)) Subscription {
	return v.notify.subscribeItem(fn)
}

// SubscribeBack registers a back listener.
func (v *Viewer) SubscribeBack(fn func(BackRequested)) Subscription {
	return v.notify.subscribeBack(fn)
}

// Unsubscribe removes a listener.
func (v *Viewer) Unsubscribe(sub Subscription) {
	v.notify.unsubscribe(sub)
}

// Destroy invalidates every outstanding scheduled callback: the debounce
// timer, the render session, and any delayed focus restore keyed off the
// session. Operations after Destroy are no-ops.
func (v *Viewer) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.debounce.Destroy()
	v.tracker.Cancel()
}

// ErrorView returns the static message for a terminal error state, or the
// empty string.
func (v *Viewer) ErrorView() string {
	switch {
	case v.confErr != nil:
		return "This picker is misconfigured and cannot start."
	case v.loadErr != nil:
		return fmt.Sprintf("Failed to load data from %s.", v.cfg.Source)
	}
	return ""
}
