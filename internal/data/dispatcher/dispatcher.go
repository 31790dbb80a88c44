package dispatcher

import (
	"errors"
	"fmt"

	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/logging"
	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
)

// ErrUnexpectedPayload marks a visa event whose data is not a visa.Rule.
var ErrUnexpectedPayload = errors.New("unexpected visa payload")

type Result struct {
	PassportsUpdated bool
	CountriesUpdated bool
	VisaUpdated      bool
}

type Dispatcher struct {
	passports  state.CatalogStore
	countries  state.CatalogStore
	controller *selection.Controller
}

func New(p, c state.CatalogStore, controller *selection.Controller) *Dispatcher {
	return &Dispatcher{passports: p, countries: c, controller: controller}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindPassports:
		res.PassportsUpdated = applyCatalog(d.passports, evt)
	case backend.KindCountries:
		res.CountriesUpdated = applyCatalog(d.countries, evt)
	case backend.KindVisa:
		if d.controller == nil {
			return res
		}
		result := selection.VisaResult{Generation: evt.Generation, Err: evt.Err}
		if evt.Err == nil {
			rule, ok := evt.Data.(visa.Rule)
			if !ok {
				result.Err = fmt.Errorf("%w: %T", ErrUnexpectedPayload, evt.Data)
			}
			result.Rule = rule
		}
		res.VisaUpdated = d.controller.ApplyVisa(result)
	}
	return res
}

func applyCatalog(store state.CatalogStore, evt backend.Event) bool {
	if store == nil {
		return false
	}
	if evt.Err != nil {
		logging.Error(evt.Err)
		store.SetErr(evt.Err)
		return true
	}
	entries, ok := evt.Data.([]visa.Country)
	if !ok {
		return false
	}
	store.SetEntries(entries)
	return true
}
