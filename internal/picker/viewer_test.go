package picker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/recents"
)

type stubParser struct {
	items []dataset.Item
	err   error
}

func (p stubParser) Parse([]byte) ([]dataset.Item, error) {
	return p.items, p.err
}

func catItem(payload, category string) dataset.Item {
	return dataset.Item{
		Payload: payload,
		Attrs:   map[string]string{"category": category},
	}
}

func testConfig(t *testing.T, items []dataset.Item, store recents.Store) Config {
	t.Helper()
	source := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(source, []byte("[]"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return Config{
		Source:       source,
		Parser:       stubParser{items: items},
		Recents:      store,
		ItemsPerRow:  4,
		CategoryAttr: "category",
		RenderItem:   func(it dataset.Item) string { return it.Payload },
		Payload:      func(it dataset.Item) interface{} { return it.Payload },
	}
}

func loadViewer(t *testing.T, cfg Config) *Viewer {
	t.Helper()
	v := New(cfg)
	if err := v.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return v
}

func payloads(items []dataset.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Payload
	}
	return out
}

func equal(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestConfigurationErrorIsTerminal(t *testing.T) {
	v := New(Config{})
	err := v.Err()
	if err == nil {
		t.Fatal("expected configuration error")
	}
	confErr, ok := err.(*ConfigurationError)
	if !ok {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if len(confErr.Missing) != 6 {
		t.Fatalf("expected all required fields reported, got %v", confErr.Missing)
	}
	if v.ErrorView() == "" {
		t.Fatal("expected static error view")
	}
	if v.SetActiveCategory("anything") {
		t.Fatal("expected operations to no-op in error state")
	}
	if err := v.Load(); err == nil {
		t.Fatal("expected Load to surface the configuration error")
	}
}

func TestLoadErrorIsTerminalAndNeverRetried(t *testing.T) {
	cfg := testConfig(t, nil, nil)
	cfg.Source = filepath.Join(t.TempDir(), "does-not-exist.json")
	v := New(cfg)

	first := v.Load()
	if first == nil {
		t.Fatal("expected load error for missing file")
	}
	if _, ok := first.(*LoadError); !ok {
		t.Fatalf("expected *LoadError, got %T", first)
	}

	// Creating the file afterwards must not help: the outcome is cached.
	if err := os.WriteFile(cfg.Source, []byte("[]"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if second := v.Load(); second == nil {
		t.Fatal("expected load error to stick without retry")
	}
	if v.ErrorView() == "" {
		t.Fatal("expected static error view")
	}
}

func TestParseFailureIsLoadError(t *testing.T) {
	cfg := testConfig(t, nil, nil)
	cfg.Parser = stubParser{err: os.ErrInvalid}
	v := New(cfg)
	if err := v.Load(); err == nil {
		t.Fatal("expected parse failure to become a load error")
	}
}

func TestCategoryOrderFollowsFirstAppearance(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{
		catItem("A", "zeta"),
		catItem("B", "alpha"),
		catItem("C", "zeta"),
		catItem("D", "mid"),
	}, nil))

	tabs := v.Tabs()
	ids := make([]string, len(tabs))
	for i, tab := range tabs {
		ids[i] = tab.ID
	}
	if !equal(ids, []string{"zeta", "alpha", "mid"}) {
		t.Fatalf("expected first-appearance order without duplicates, got %v", ids)
	}
}

func TestCategoryOrderSortsWhenConfigured(t *testing.T) {
	cfg := testConfig(t, []dataset.Item{
		catItem("A", "zeta"),
		catItem("B", "alpha"),
	}, nil)
	cfg.SortCategories = true
	v := loadViewer(t, cfg)

	tabs := v.Tabs()
	if tabs[0].ID != "alpha" || tabs[1].ID != "zeta" {
		t.Fatalf("expected lexicographic tabs, got %v", tabs)
	}
}

func TestInitialSelectionPrefersRecents(t *testing.T) {
	store := recents.NewMemoryStore(5)
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, store))
	if v.ActiveCategory() != RecentsID {
		t.Fatalf("expected Recents active, got %q", v.ActiveCategory())
	}

	noRecents := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, nil))
	if noRecents.ActiveCategory() != "cat1" {
		t.Fatalf("expected first category active, got %q", noRecents.ActiveCategory())
	}
}

func TestSetActiveCategoryUpdatesExactlyOneCheckedTab(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{
		catItem("A", "cat1"),
		catItem("B", "cat2"),
	}, nil))

	if !v.SetActiveCategory("cat2") {
		t.Fatal("expected switch to cat2")
	}
	if v.SetActiveCategory("cat2") {
		t.Fatal("expected no-op for already-active category")
	}
	if v.SetActiveCategory("nope") {
		t.Fatal("expected no-op for unknown category")
	}
	checked := 0
	for _, tab := range v.Tabs() {
		if tab.Checked {
			checked++
			if tab.ID != "cat2" {
				t.Fatalf("unexpected checked tab %q", tab.ID)
			}
		}
	}
	if checked != 1 {
		t.Fatalf("expected exactly one checked tab, got %d", checked)
	}
}

func TestSearchSnapshotAndRestore(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{
		catItem("A", "cat1"),
		catItem("B", "cat2"),
	}, nil))
	v.SetActiveCategory("cat2")

	if _, changed := v.OnSearchTextChanged("  QUERY  "); !changed {
		t.Fatal("expected search change")
	}
	if v.SearchText() != "query" {
		t.Fatalf("expected normalized query, got %q", v.SearchText())
	}
	if _, changed := v.OnSearchTextChanged("query"); changed {
		t.Fatal("expected normalization no-op for unchanged text")
	}

	v.SetActiveCategory("cat1")
	if v.Searching() {
		t.Fatal("expected tab switch to clear the live search")
	}

	v.OnSearchTextChanged("again")
	if _, changed := v.OnSearchTextChanged(""); !changed {
		t.Fatal("expected clear to register")
	}
	if v.ActiveCategory() != "cat1" {
		t.Fatalf("expected snapshot category restored, got %q", v.ActiveCategory())
	}
}

func TestSearchSpansAllCategories(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{
		catItem("apple", "cat1"),
		catItem("apricot", "cat2"),
		catItem("banana", "cat2"),
	}, nil))
	v.SetActiveCategory("cat1")

	v.OnSearchTextChanged("ap")
	got := payloads(v.VisibleItems())
	if !equal(got, []string{"apple", "apricot"}) {
		t.Fatalf("expected search across categories, got %v", got)
	}
}

func TestVisibleItemsForRecentsReadsLiveStore(t *testing.T) {
	store := recents.NewMemoryStore(5)
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, store))

	if len(v.VisibleItems()) != 0 {
		t.Fatal("expected empty recents initially")
	}
	store.Add(catItem("A", "cat1"))
	if got := payloads(v.VisibleItems()); !equal(got, []string{"A"}) {
		t.Fatalf("expected live recents read, got %v", got)
	}
}

func TestFilterAndRenderMintsFreshSessions(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, nil))
	_, first := v.FilterAndRender()
	_, second := v.FilterAndRender()
	if first.Current() {
		t.Fatal("expected older session superseded")
	}
	if !second.Current() {
		t.Fatal("expected newest session current")
	}
}

func TestActivateRecordsRecentsAndPublishesPayload(t *testing.T) {
	store := recents.NewMemoryStore(5)
	cfg := testConfig(t, []dataset.Item{catItem("A", "cat1")}, store)
	cfg.Payload = func(it dataset.Item) interface{} { return "payload:" + it.Payload }
	v := loadViewer(t, cfg)

	var got ItemSelected
	v.SubscribeItemSelected(func(evt ItemSelected) { got = evt })
	v.Activate(catItem("A", "cat1"))

	if got.Payload != "payload:A" {
		t.Fatalf("expected constructed payload, got %v", got.Payload)
	}
	if recs := store.Recents(); len(recs) != 1 || recs[0].Payload != "A" {
		t.Fatalf("expected item recorded into recents, got %v", recs)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, nil))
	calls := 0
	sub := v.SubscribeItemSelected(func(ItemSelected) { calls++ })
	v.Activate(catItem("A", "cat1"))
	v.Unsubscribe(sub)
	v.Activate(catItem("A", "cat1"))
	if calls != 1 {
		t.Fatalf("expected one delivery, got %d", calls)
	}
}

func TestDebouncedSearchFiresOncePerQuietWindow(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, nil))

	tok1, _ := v.OnSearchTextChanged("a")
	tok2, _ := v.OnSearchTextChanged("ab")
	tok3, _ := v.OnSearchTextChanged("abc")

	fired := 0
	if v.FireSearch(tok1) {
		fired++
	}
	if v.FireSearch(tok2) {
		fired++
	}
	if v.FireSearch(tok3) {
		fired++
	}
	if fired != 1 {
		t.Fatalf("expected exactly one fire per quiet window, got %d", fired)
	}
}

func TestDestroyCancelsOutstandingWork(t *testing.T) {
	v := loadViewer(t, testConfig(t, []dataset.Item{catItem("A", "cat1")}, nil))
	tok, _ := v.OnSearchTextChanged("abc")
	_, session := v.FilterAndRender()
	v.Destroy()

	if v.FireSearch(tok) {
		t.Fatal("expected debounce cancelled by destroy")
	}
	if session.Current() {
		t.Fatal("expected render session cancelled by destroy")
	}
	if v.SetActiveCategory("cat1") {
		t.Fatal("expected operations after destroy to no-op")
	}
}

func TestEndToEndCategoryBrowsingScenario(t *testing.T) {
	store := recents.NewMemoryStore(5)
	store.Add(catItem("B", "cat1"))
	v := loadViewer(t, testConfig(t, []dataset.Item{
		catItem("A", "cat1"),
		catItem("B", "cat1"),
		catItem("C", "cat2"),
	}, store))

	tabs := v.Tabs()
	ids := make([]string, len(tabs))
	for i, tab := range tabs {
		ids[i] = tab.ID
	}
	if !equal(ids, []string{RecentsID, "cat1", "cat2"}) {
		t.Fatalf("expected [recents cat1 cat2], got %v", ids)
	}

	if got := payloads(v.VisibleItems()); !equal(got, []string{"B"}) {
		t.Fatalf("expected initial display [B], got %v", got)
	}

	v.SetActiveCategory("cat1")
	if got := payloads(v.VisibleItems()); !equal(got, []string{"A", "B"}) {
		t.Fatalf("expected cat1 display [A B], got %v", got)
	}

	v.OnSearchTextChanged("C")
	if got := payloads(v.VisibleItems()); !equal(got, []string{"C"}) {
		t.Fatalf("expected search display [C], got %v", got)
	}

	v.OnSearchTextChanged("")
	if v.ActiveCategory() != "cat1" {
		t.Fatalf("expected cat1 restored after clearing search, got %q", v.ActiveCategory())
	}
	if got := payloads(v.VisibleItems()); !equal(got, []string{"A", "B"}) {
		t.Fatalf("expected cat1 display restored, got %v", got)
	}
}

func TestNextTabSkipsDisabledAndWraps(t *testing.T) {
	tabs := []Tab{
		{ID: "a", Visible: true, Enabled: true},
		{ID: "b", Visible: true, Enabled: false},
		{ID: "c", Visible: true, Enabled: true},
	}
	if got := NextTab(tabs, "a", 1, TabScrollClamp); got != "c" {
		t.Fatalf("expected disabled tab skipped, got %q", got)
	}
	if got := NextTab(tabs, "c", 1, TabScrollClamp); got != "c" {
		t.Fatalf("expected clamp at end, got %q", got)
	}
	if got := NextTab(tabs, "c", 1, TabScrollWrap); got != "a" {
		t.Fatalf("expected wrap to first, got %q", got)
	}
	if got := NextTab(tabs, "a", -1, TabScrollWrap); got != "c" {
		t.Fatalf("expected wrap backwards, got %q", got)
	}
}
