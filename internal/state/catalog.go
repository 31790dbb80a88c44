package state

import (
	"strings"

	"github.com/atomicstack/visa-lookup/internal/visa"
)

// CatalogStore holds one reference list (passports or destinations) for the
// session. A failed load is kept as the list's replacement error.
type CatalogStore interface {
	Entries() []visa.Country
	SetEntries([]visa.Country)
	Err() error
	SetErr(error)
	Loaded() bool
	Find(id string) (visa.Country, bool)
	FindSlug(slug string) (visa.Country, bool)
}

type catalogStore struct {
	entries []visa.Country
	err     error
	loaded  bool
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (c *catalogStore) Entries() []visa.Country {
	return cloneCountries(c.entries)
}

func (c *catalogStore) SetEntries(entries []visa.Country) {
	c.entries = cloneCountries(entries)
	c.err = nil
	c.loaded = true
}

func (c *catalogStore) Err() error {
	return c.err
}

func (c *catalogStore) SetErr(err error) {
	c.err = err
	c.entries = nil
	c.loaded = true
}

// Loaded reports whether a load attempt has finished, successfully or not.
func (c *catalogStore) Loaded() bool {
	return c.loaded
}

func (c *catalogStore) Find(id string) (visa.Country, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return visa.Country{}, false
	}
	for _, entry := range c.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return visa.Country{}, false
}

func (c *catalogStore) FindSlug(slug string) (visa.Country, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return visa.Country{}, false
	}
	for _, entry := range c.entries {
		if entry.Slug == slug {
			return entry, true
		}
	}
	return visa.Country{}, false
}

func cloneCountries(entries []visa.Country) []visa.Country {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]visa.Country, len(entries))
	copy(dup, entries)
	return dup
}
