package events

import "github.com/atomicstack/visa-lookup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Check(passport, country, days string) {
	logging.Trace("app.check", map[string]interface{}{"passport": passport, "country": country, "days": days})
}
