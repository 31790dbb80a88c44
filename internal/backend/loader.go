package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/visa"
)

// Kind represents the type of data carried by an Event.
type Kind int

const (
	KindPassports Kind = iota
	KindCountries
	KindVisa
)

func (k Kind) String() string {
	switch k {
	case KindPassports:
		return "passports"
	case KindCountries:
		return "countries"
	case KindVisa:
		return "visa"
	}
	return "unknown"
}

// Event conveys fetched data or an error. Data is []visa.Country for the
// catalog kinds and visa.Rule for KindVisa; Generation is only set for
// KindVisa.
type Event struct {
	Kind       Kind
	Data       interface{}
	Err        error
	Generation uint64
}

// Source is the subset of the API client the loader needs.
type Source interface {
	Passports(ctx context.Context) ([]visa.Country, error)
	Countries(ctx context.Context) ([]visa.Country, error)
	ResolveVisa(ctx context.Context, passportSlug, countrySlug string) (visa.Rule, error)
}

// visaInterval is the minimum spacing between visa lookups.
var visaInterval = 100 * time.Millisecond

// Loader runs fetches against a Source, each bounded by timeout. The two
// catalog fetches started by Start are published on Events; visa lookups
// are synchronous and meant to run inside a tea.Cmd.
type Loader struct {
	source  Source
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
	once   sync.Once

	visaThrottle *throttle
}

// NewLoader creates a loader. A zero timeout disables the per-fetch limit.
func NewLoader(source Source, timeout time.Duration) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		source:       source,
		timeout:      timeout,
		ctx:          ctx,
		cancel:       cancel,
		events:       make(chan Event, 4),
		visaThrottle: newThrottle(visaInterval),
	}
}

// SetVisaInterval changes the minimum spacing between visa lookups.
func (l *Loader) SetVisaInterval(d time.Duration) {
	l.visaThrottle = newThrottle(d)
}

// Start launches the passport and country fetches. The events channel is
// closed once both have been delivered. Calls after the first are no-ops.
func (l *Loader) Start() {
	l.once.Do(func() {
		l.wg.Add(2)
		go l.load(KindPassports, l.source.Passports)
		go l.load(KindCountries, l.source.Countries)
		go func() {
			l.wg.Wait()
			close(l.events)
		}()
	})
}

// Events returns the channel of catalog events.
func (l *Loader) Events() <-chan Event {
	return l.events
}

// Stop cancels in-flight fetches.
func (l *Loader) Stop() {
	l.cancel()
}

// Wait blocks until the catalog fetches have exited. Call after Start.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) load(kind Kind, fetch func(context.Context) ([]visa.Country, error)) {
	defer l.wg.Done()
	ctx, cancel := l.fetchContext()
	defer cancel()
	entries, err := fetch(ctx)
	evt := Event{Kind: kind, Data: entries, Err: err}
	select {
	case <-l.ctx.Done():
	case l.events <- evt:
	}
}

// Visa resolves the rule for req. The returned event carries the request's
// generation so stale answers can be told apart.
func (l *Loader) Visa(req selection.FetchRequest) Event {
	evt := Event{Kind: KindVisa, Generation: req.Generation}
	ctx, cancel := l.fetchContext()
	defer cancel()
	if err := l.visaThrottle.wait(ctx); err != nil {
		evt.Err = err
		return evt
	}
	rule, err := l.source.ResolveVisa(ctx, req.PassportSlug, req.CountrySlug)
	if err != nil {
		evt.Err = err
		return evt
	}
	evt.Data = rule
	return evt
}

func (l *Loader) fetchContext() (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(l.ctx)
	}
	return context.WithTimeout(l.ctx, l.timeout)
}
