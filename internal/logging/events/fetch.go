package events

import (
	"time"

	"github.com/atomicstack/visa-lookup/internal/logging"
)

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Start(requestID, url string) {
	logging.Trace("fetch.start", map[string]interface{}{"request": requestID, "url": url})
}

func (FetchTracer) Done(requestID, url string, status int, elapsed time.Duration) {
	logging.Trace("fetch.done", map[string]interface{}{
		"request": requestID,
		"url":     url,
		"status":  status,
		"ms":      elapsed.Milliseconds(),
	})
}

func (FetchTracer) Error(requestID, url string, err error) {
	if err == nil {
		return
	}
	logging.Trace("fetch.error", map[string]interface{}{"request": requestID, "url": url, "error": err.Error()})
}
