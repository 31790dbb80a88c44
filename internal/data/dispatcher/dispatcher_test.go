package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/logging"
	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, state.CatalogStore, state.CatalogStore, *selection.Controller) {
	t.Helper()
	logging.Configure(t.TempDir() + "/visa-lookup.log")
	t.Cleanup(func() { logging.Configure("") })
	passports := state.NewCatalogStore()
	countries := state.NewCatalogStore()
	controller := selection.New(passports, countries)
	return New(passports, countries, controller), passports, countries, controller
}

func TestHandleCatalogs(t *testing.T) {
	d, passports, countries, _ := newTestDispatcher(t)

	res := d.Handle(backend.Event{Kind: backend.KindPassports, Data: []visa.Country{{ID: "it", Slug: "italy"}}})
	if !res.PassportsUpdated || res.CountriesUpdated || res.VisaUpdated {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := passports.Entries(); len(got) != 1 || got[0].ID != "it" {
		t.Fatalf("unexpected passports %+v", got)
	}

	res = d.Handle(backend.Event{Kind: backend.KindCountries, Err: errors.New("boom")})
	if !res.CountriesUpdated {
		t.Fatalf("expected failed catalog to count as an update")
	}
	if countries.Err() == nil || !countries.Loaded() {
		t.Fatalf("expected catalog error stored")
	}
}

func TestHandleIgnoresUnexpectedPayload(t *testing.T) {
	d, passports, _, _ := newTestDispatcher(t)
	res := d.Handle(backend.Event{Kind: backend.KindPassports, Data: "nope"})
	if res.PassportsUpdated || passports.Loaded() {
		t.Fatalf("unexpected payload must be ignored")
	}
}

func TestHandleVisaAppliesCurrentGenerationOnly(t *testing.T) {
	d, passports, countries, controller := newTestDispatcher(t)
	passports.SetEntries([]visa.Country{{ID: "us", Slug: "united-states"}})
	countries.SetEntries([]visa.Country{{ID: "it", Slug: "italy"}, {ID: "jp", Slug: "japan"}})
	controller.SelectPassport("us")
	old, _ := controller.SelectCountry("it")
	current, _ := controller.SelectCountry("jp")

	res := d.Handle(backend.Event{Kind: backend.KindVisa, Generation: old.Generation, Data: visa.Rule{IsVisaRequired: true}})
	if res.VisaUpdated {
		t.Fatalf("stale visa event must not apply")
	}
	res = d.Handle(backend.Event{Kind: backend.KindVisa, Generation: current.Generation, Data: visa.Rule{IsEVisa: true}})
	if !res.VisaUpdated {
		t.Fatalf("expected current visa event to apply")
	}
	if got := controller.Verdict(); got.Class != visa.ClassEVisa {
		t.Fatalf("unexpected verdict %+v", got)
	}
}

func TestHandleVisaError(t *testing.T) {
	d, passports, countries, controller := newTestDispatcher(t)
	passports.SetEntries([]visa.Country{{ID: "us", Slug: "united-states"}})
	countries.SetEntries([]visa.Country{{ID: "it", Slug: "italy"}})
	controller.SelectPassport("us")
	req, _ := controller.SelectCountry("it")

	res := d.Handle(backend.Event{Kind: backend.KindVisa, Generation: req.Generation, Err: errors.New("offline")})
	if !res.VisaUpdated || controller.Status() != selection.StatusFailed {
		t.Fatalf("expected failure applied, got %+v status %v", res, controller.Status())
	}
}

func TestHandleVisaWithWrongPayloadFails(t *testing.T) {
	d, passports, countries, controller := newTestDispatcher(t)
	passports.SetEntries([]visa.Country{{ID: "us", Slug: "united-states"}})
	countries.SetEntries([]visa.Country{{ID: "it", Slug: "italy"}})
	controller.SelectPassport("us")
	req, _ := controller.SelectCountry("it")

	res := d.Handle(backend.Event{Kind: backend.KindVisa, Generation: req.Generation, Data: "nope"})
	if !res.VisaUpdated || controller.Status() != selection.StatusFailed {
		t.Fatalf("expected wrong payload to fail the lookup, got %+v status %v", res, controller.Status())
	}
	if got := controller.Verdict().Text; got != visa.LoadFailedMessage {
		t.Fatalf("expected load failure message, got %q", got)
	}
}
