package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/visa"
)

type fakeSource struct {
	passports    []visa.Country
	countries    []visa.Country
	countriesErr error
	rule         visa.Rule
	visaErr      error
	block        bool
	blockCatalog bool
	resolved     []string
}

func (f *fakeSource) Passports(ctx context.Context) ([]visa.Country, error) {
	if f.blockCatalog {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.passports, nil
}

func (f *fakeSource) Countries(ctx context.Context) ([]visa.Country, error) {
	return f.countries, f.countriesErr
}

func (f *fakeSource) ResolveVisa(ctx context.Context, passportSlug, countrySlug string) (visa.Rule, error) {
	f.resolved = append(f.resolved, passportSlug+">"+countrySlug)
	if f.block {
		<-ctx.Done()
		return visa.Rule{}, ctx.Err()
	}
	return f.rule, f.visaErr
}

func withVisaInterval(t *testing.T, d time.Duration) {
	t.Helper()
	prev := visaInterval
	visaInterval = d
	t.Cleanup(func() { visaInterval = prev })
}

func TestLoaderPublishesCatalogsThenCloses(t *testing.T) {
	source := &fakeSource{
		passports:    []visa.Country{{ID: "it", Slug: "italy"}},
		countriesErr: errors.New("boom"),
	}
	l := NewLoader(source, time.Second)
	l.Start()
	l.Start()

	seen := map[Kind]Event{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case evt, ok := <-l.Events():
			if !ok {
				t.Fatalf("channel closed early, saw %v", seen)
			}
			seen[evt.Kind] = evt
		case <-timeout:
			t.Fatalf("timed out waiting for catalog events")
		}
	}
	if entries, ok := seen[KindPassports].Data.([]visa.Country); !ok || len(entries) != 1 {
		t.Fatalf("unexpected passports event %+v", seen[KindPassports])
	}
	if seen[KindCountries].Err == nil {
		t.Fatalf("expected countries error")
	}
	select {
	case _, ok := <-l.Events():
		if ok {
			t.Fatalf("expected channel closed after both catalogs")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for close")
	}
}

func TestLoaderVisaCarriesGeneration(t *testing.T) {
	withVisaInterval(t, 0)
	source := &fakeSource{rule: visa.Rule{CountryName: "italy", VisaDays: 90}}
	l := NewLoader(source, time.Second)

	evt := l.Visa(selection.FetchRequest{Generation: 7, PassportSlug: "united-states", CountrySlug: "italy"})
	if evt.Kind != KindVisa || evt.Generation != 7 || evt.Err != nil {
		t.Fatalf("unexpected event %+v", evt)
	}
	if rule, ok := evt.Data.(visa.Rule); !ok || rule.VisaDays != 90 {
		t.Fatalf("unexpected data %#v", evt.Data)
	}
	if len(source.resolved) != 1 || source.resolved[0] != "united-states>italy" {
		t.Fatalf("unexpected lookups %v", source.resolved)
	}
}

func TestLoaderVisaTimesOut(t *testing.T) {
	withVisaInterval(t, 0)
	source := &fakeSource{block: true}
	l := NewLoader(source, 20*time.Millisecond)

	evt := l.Visa(selection.FetchRequest{Generation: 1, PassportSlug: "a", CountrySlug: "b"})
	if !errors.Is(evt.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", evt.Err)
	}
	if evt.Data != nil {
		t.Fatalf("expected no data on error, got %#v", evt.Data)
	}
}

func TestLoaderStopCancelsVisa(t *testing.T) {
	withVisaInterval(t, 0)
	l := NewLoader(&fakeSource{block: true}, 0)
	l.Stop()
	evt := l.Visa(selection.FetchRequest{Generation: 1})
	if !errors.Is(evt.Err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", evt.Err)
	}
}

func TestLoaderWaitReturnsAfterStop(t *testing.T) {
	l := NewLoader(&fakeSource{blockCatalog: true}, 0)
	l.Start()
	l.Stop()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Wait did not return after Stop")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(context.Background()); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 55*time.Millisecond {
		t.Fatalf("expected calls spaced out, took %v", elapsed)
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("first wait should pass, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestKindString(t *testing.T) {
	if KindVisa.String() != "visa" || Kind(42).String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
}
