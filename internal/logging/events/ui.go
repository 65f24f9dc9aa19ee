package events

import "github.com/gridpick/gridpick/internal/logging"

type UITracer struct{}

type SearchTracer struct{}

type RenderTracer struct{}

type LayoutTracer struct{}

type RecentsTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Search  = SearchTracer{}
	Render  = RenderTracer{}
	Layout  = LayoutTracer{}
	Recents = RecentsTracer{}
	Command = CommandTracer{}
)

func (UITracer) TabSelect(category string) {
	logging.Trace("ui.tab", map[string]interface{}{"category": category})
}

func (UITracer) GridCursor(index int) {
	logging.Trace("ui.cursor", map[string]interface{}{"index": index})
}

func (UITracer) FocusSearch() {
	logging.Trace("ui.focus-search", nil)
}

func (UITracer) Back() {
	logging.Trace("ui.back", nil)
}

func (SearchTracer) Changed(text string) {
	logging.Trace("search.changed", map[string]interface{}{"text": text})
}

func (SearchTracer) Cleared(restored string) {
	logging.Trace("search.cleared", map[string]interface{}{"restored": restored})
}

func (SearchTracer) Debounced(token uint64) {
	logging.Trace("search.debounced", map[string]interface{}{"token": token})
}

func (SearchTracer) Stale(token uint64) {
	logging.Trace("search.stale", map[string]interface{}{"token": token})
}

func (RenderTracer) SessionStart(id uint64, items int) {
	logging.Trace("render.session", map[string]interface{}{"id": id, "items": items})
}

func (RenderTracer) Chunk(id uint64, offset, size int) {
	logging.Trace("render.chunk", map[string]interface{}{"id": id, "offset": offset, "size": size})
}

func (RenderTracer) Abandoned(id uint64) {
	logging.Trace("render.abandoned", map[string]interface{}{"id": id})
}

func (LayoutTracer) Packed(columns, placed, skipped int, height float64) {
	logging.Trace("layout.packed", map[string]interface{}{
		"columns": columns,
		"placed":  placed,
		"skipped": skipped,
		"height":  height,
	})
}

func (LayoutTracer) Deferred(width float64) {
	logging.Trace("layout.deferred", map[string]interface{}{"width": width})
}

func (RecentsTracer) Added(id string, size int) {
	logging.Trace("recents.added", map[string]interface{}{"item": id, "size": size})
}

func (RecentsTracer) Changed(size int) {
	logging.Trace("recents.changed", map[string]interface{}{"size": size})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
