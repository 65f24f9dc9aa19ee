package events

import "github.com/gridpick/gridpick/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) DatasetLoaded(source string, items, categories int) {
	logging.Trace("app.dataset", map[string]interface{}{
		"source":     source,
		"items":      items,
		"categories": categories,
	})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
