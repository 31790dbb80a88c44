package selection

import (
	"strings"

	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/atomicstack/visa-lookup/internal/worldmap"
)

// PassportOptions lists the passport catalog as combobox options. The entry
// sharing the destination's slug is left as a nil gap.
func (c *Controller) PassportOptions() []*visa.Option {
	return options(c.passports, c.country)
}

// CountryOptions lists the destination catalog as combobox options. The
// entry sharing the passport's slug is left as a nil gap.
func (c *Controller) CountryOptions() []*visa.Option {
	return options(c.countries, c.passport)
}

func options(store state.CatalogStore, other *visa.Country) []*visa.Option {
	if store == nil {
		return nil
	}
	entries := store.Entries()
	out := make([]*visa.Option, len(entries))
	for i, entry := range entries {
		if other != nil && other.Slug == entry.Slug {
			continue
		}
		option := visa.OptionFor(entry)
		out[i] = &option
	}
	return out
}

// PassportOption is the selected passport as an option, nil when unset.
func (c *Controller) PassportOption() *visa.Option {
	return selectedOption(c.passport)
}

// CountryOption is the selected destination as an option, nil when unset.
func (c *Controller) CountryOption() *visa.Option {
	return selectedOption(c.country)
}

func selectedOption(entry *visa.Country) *visa.Option {
	if entry == nil || entry.ID == "" {
		return nil
	}
	option := visa.OptionFor(*entry)
	return &option
}

// Verdict is the message for the resolved rule and the current stay length.
// A failed lookup yields the localized load error with no class.
func (c *Controller) Verdict() visa.Verdict {
	switch c.status {
	case StatusResolved:
		return visa.Message(c.rule, c.days)
	case StatusFailed:
		return visa.Verdict{Text: visa.LoadFailedMessage}
	}
	return visa.Verdict{}
}

// Guidance is the prompt for the next missing input.
func (c *Controller) Guidance() string {
	return visa.Guidance(c.passport != nil, c.country != nil, c.days)
}

// ShowGuidance reports whether the guidance line is displayed: while no
// rule is known, or while the rule depends on the stay length.
func (c *Controller) ShowGuidance() bool {
	switch c.status {
	case StatusAbsent, StatusPending:
		return true
	case StatusResolved:
		return c.rule.DurationDependent()
	}
	return false
}

// ShowDaysInput reports whether the stay-length field is displayed.
func (c *Controller) ShowDaysInput() bool {
	return c.status == StatusResolved && c.rule.DurationDependent()
}

// DaysSelected reports whether the stay length parses to a non-zero number.
func (c *Controller) DaysSelected() bool {
	days, ok := visa.ParseDays(c.days)
	return ok && days != 0
}

// Style implements worldmap.Styler.
func (c *Controller) Style(code string) worldmap.Fill {
	return c.RegionStyle(code)
}

// RegionStyle colours the selected passport and destination.
func (c *Controller) RegionStyle(code string) worldmap.Fill {
	code = strings.ToLower(code)
	switch {
	case c.passport != nil && code == c.passport.ID:
		return worldmap.FillPassport
	case c.country != nil && code == c.country.ID:
		return worldmap.FillDestination
	}
	return worldmap.FillDefault
}

// Regions lists the map regions: every passport-issuing country, then the
// destinations that issue no passport. Ids appear once.
func (c *Controller) Regions() []worldmap.Region {
	var regions []worldmap.Region
	seen := map[string]bool{}
	for _, store := range []state.CatalogStore{c.passports, c.countries} {
		if store == nil {
			continue
		}
		for _, entry := range store.Entries() {
			if entry.ID == "" || seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true
			regions = append(regions, worldmap.Region{Code: entry.ID, Label: visa.Deslugify(entry.Slug)})
		}
	}
	return regions
}
