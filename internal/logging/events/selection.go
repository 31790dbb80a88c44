package events

import "github.com/atomicstack/visa-lookup/internal/logging"

type SelectionTracer struct{}

type MapTracer struct{}

var (
	Selection = SelectionTracer{}
	Map       = MapTracer{}
)

func (SelectionTracer) Passport(id string) {
	logging.Trace("selection.passport", map[string]interface{}{"id": id})
}

func (SelectionTracer) Country(id string) {
	logging.Trace("selection.country", map[string]interface{}{"id": id})
}

func (SelectionTracer) Days(text string) {
	logging.Trace("selection.days", map[string]interface{}{"text": text})
}

func (SelectionTracer) Resolved(generation uint64, class string) {
	logging.Trace("selection.resolved", map[string]interface{}{"generation": generation, "class": class})
}

func (SelectionTracer) Failed(generation uint64, err error) {
	payload := map[string]interface{}{"generation": generation}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("selection.failed", payload)
}

func (SelectionTracer) Stale(generation, current uint64) {
	logging.Trace("selection.stale", map[string]interface{}{"generation": generation, "current": current})
}

func (MapTracer) Click(code, slot string) {
	logging.Trace("map.click", map[string]interface{}{"code": code, "slot": slot})
}

func (MapTracer) Ignored(code, reason string) {
	logging.Trace("map.ignored", map[string]interface{}{"code": code, "reason": reason})
}
