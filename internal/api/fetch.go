package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atomicstack/visa-lookup/internal/logging/events"
	"github.com/google/uuid"
)

const (
	userAgent      = "visa-lookup/1"
	maxPayloadSize = 8 << 20
)

// Fetcher retrieves a JSON document and decodes it into dst.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, dst interface{}) error
}

// HTTPFetcher is the net/http implementation of Fetcher.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher whose requests give up after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchJSON issues a GET for url and decodes the body. Non-2xx responses are errors.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, dst interface{}) error {
	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	events.Fetch.Start(requestID, url)
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		events.Fetch.Error(requestID, url, err)
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	events.Fetch.Done(requestID, url, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &StatusError{URL: url, Status: resp.StatusCode}
		events.Fetch.Error(requestID, url, err)
		return err
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadSize)).Decode(dst); err != nil {
		events.Fetch.Error(requestID, url, err)
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
