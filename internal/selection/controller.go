// Package selection holds the page state machine: which passport and
// destination are chosen, the planned stay length, and the visa rule
// resolved for the pair.
package selection

import (
	"strings"

	"github.com/atomicstack/visa-lookup/internal/logging"
	"github.com/atomicstack/visa-lookup/internal/logging/events"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/atomicstack/visa-lookup/internal/worldmap"
)

// Status describes the resolved visa.
type Status int

const (
	// StatusAbsent: at least one slot is empty.
	StatusAbsent Status = iota
	// StatusPending: both slots are set and the lookup is in flight.
	StatusPending
	StatusResolved
	StatusFailed
)

// FetchRequest asks for the visa table of PassportSlug. Generation tags the
// eventual VisaResult so late answers for an older pair can be dropped.
type FetchRequest struct {
	Generation   uint64
	PassportSlug string
	CountrySlug  string
}

// VisaResult is the outcome of a FetchRequest.
type VisaResult struct {
	Generation uint64
	Rule       visa.Rule
	Err        error
}

// Controller owns the selection state. It is not safe for concurrent use;
// the UI drives it from the Bubble Tea update loop.
type Controller struct {
	passports state.CatalogStore
	countries state.CatalogStore

	passport *visa.Country
	country  *visa.Country
	days     string

	generation uint64
	status     Status
	rule       visa.Rule
}

// New returns a controller reading from the two catalogs.
func New(passports, countries state.CatalogStore) *Controller {
	return &Controller{passports: passports, countries: countries}
}

// Passport returns the selected passport.
func (c *Controller) Passport() (visa.Country, bool) {
	if c.passport == nil {
		return visa.Country{}, false
	}
	return *c.passport, true
}

// Country returns the selected destination.
func (c *Controller) Country() (visa.Country, bool) {
	if c.country == nil {
		return visa.Country{}, false
	}
	return *c.country, true
}

// Days returns the raw stay-length text.
func (c *Controller) Days() string {
	return c.days
}

// Generation returns the id of the most recent selection change.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Status returns the state of the visa resolution.
func (c *Controller) Status() Status {
	return c.status
}

// Rule returns the resolved rule, if any.
func (c *Controller) Rule() (visa.Rule, bool) {
	if c.status != StatusResolved {
		return visa.Rule{}, false
	}
	return c.rule, true
}

// SelectPassport sets the passport by catalog id; "" or an unknown id
// clears it. A request is returned when the change leaves both slots set.
func (c *Controller) SelectPassport(id string) (FetchRequest, bool) {
	events.Selection.Passport(id)
	next := lookup(c.passports, id)
	if sameCountry(c.passport, next) {
		return FetchRequest{}, false
	}
	c.passport = next
	return c.selectionChanged()
}

// SelectCountry sets the destination by catalog id; "" or an unknown id
// clears it.
func (c *Controller) SelectCountry(id string) (FetchRequest, bool) {
	events.Selection.Country(id)
	next := lookup(c.countries, id)
	if sameCountry(c.country, next) {
		return FetchRequest{}, false
	}
	c.country = next
	return c.selectionChanged()
}

// SetDays stores the stay-length text. The visa table does not depend on it,
// so nothing is refetched.
func (c *Controller) SetDays(text string) {
	if text == c.days {
		return
	}
	c.days = text
	events.Selection.Days(text)
}

// ClickRegion applies a map click: the first click picks the passport, the
// second the destination, and further clicks are ignored until a slot is
// cleared.
func (c *Controller) ClickRegion(code string) (FetchRequest, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	switch {
	case c.passport == nil:
		entry, ok := c.passports.Find(code)
		if !ok {
			events.Map.Ignored(code, "not a passport")
			return FetchRequest{}, false
		}
		events.Map.Click(code, "passport")
		return c.SelectPassport(entry.ID)
	case c.country == nil:
		entry, ok := c.countries.Find(code)
		if !ok {
			events.Map.Ignored(code, "not a destination")
			return FetchRequest{}, false
		}
		events.Map.Click(code, "country")
		return c.SelectCountry(entry.ID)
	}
	events.Map.Ignored(code, "both selected")
	return FetchRequest{}, false
}

// ApplyVisa stores a lookup result. Results for an older generation are
// discarded; the return value reports whether the result was applied.
func (c *Controller) ApplyVisa(res VisaResult) bool {
	if res.Generation != c.generation || c.status != StatusPending {
		events.Selection.Stale(res.Generation, c.generation)
		return false
	}
	if res.Err != nil {
		logging.Error(res.Err)
		events.Selection.Failed(res.Generation, res.Err)
		c.status = StatusFailed
		c.rule = visa.Rule{}
		return true
	}
	c.status = StatusResolved
	c.rule = res.Rule
	events.Selection.Resolved(res.Generation, string(visa.Message(res.Rule, c.days).Class))
	return true
}

// Reset clears both slots, the stay length and the resolution.
func (c *Controller) Reset() {
	c.passport = nil
	c.country = nil
	c.days = ""
	c.generation++
	c.status = StatusAbsent
	c.rule = visa.Rule{}
}

func (c *Controller) selectionChanged() (FetchRequest, bool) {
	c.generation++
	c.rule = visa.Rule{}
	if c.passport == nil || c.country == nil {
		c.status = StatusAbsent
		return FetchRequest{}, false
	}
	c.status = StatusPending
	return FetchRequest{
		Generation:   c.generation,
		PassportSlug: c.passport.Slug,
		CountrySlug:  c.country.Slug,
	}, true
}

func lookup(store state.CatalogStore, id string) *visa.Country {
	if id == "" || store == nil {
		return nil
	}
	entry, ok := store.Find(id)
	if !ok {
		return nil
	}
	return &entry
}

func sameCountry(a, b *visa.Country) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var _ worldmap.Styler = (*Controller)(nil)
