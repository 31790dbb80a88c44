package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/logging"
	"github.com/atomicstack/visa-lookup/internal/visa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var errNotFound = errors.New("not found")

type fakeSource struct {
	mu        sync.Mutex
	passports []visa.Country
	countries []visa.Country
	rules     map[string]visa.Rule
	lookups   []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		passports: []visa.Country{
			{ID: "it", Slug: "italy"},
			{ID: "us", Slug: "united-states"},
			{ID: "fr", Slug: "france"},
		},
		countries: []visa.Country{
			{ID: "it", Slug: "italy"},
			{ID: "us", Slug: "united-states"},
			{ID: "jp", Slug: "japan"},
		},
		rules: map[string]visa.Rule{
			"italy>united-states": {CountryName: "united-states", VisaDays: 90},
			"italy>japan":         {CountryName: "japan", IsEVisa: true},
			"united-states>italy": {CountryName: "italy"},
			"france>japan":        {CountryName: "japan", IsVisaRequired: true},
		},
	}
}

func (f *fakeSource) Passports(ctx context.Context) ([]visa.Country, error) {
	return f.passports, nil
}

func (f *fakeSource) Countries(ctx context.Context) ([]visa.Country, error) {
	return f.countries, nil
}

func (f *fakeSource) ResolveVisa(ctx context.Context, passportSlug, countrySlug string) (visa.Rule, error) {
	key := passportSlug + ">" + countrySlug
	f.mu.Lock()
	f.lookups = append(f.lookups, key)
	f.mu.Unlock()
	rule, ok := f.rules[key]
	if !ok {
		return visa.Rule{}, errNotFound
	}
	return rule, nil
}

func (f *fakeSource) Lookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lookups...)
}

func useTempLog(t *testing.T) {
	t.Helper()
	logging.Configure(t.TempDir() + "/visa-lookup.log")
	t.Cleanup(func() { logging.Configure("") })
}

// newLoadedHarness starts a model against a fake source and waits for both
// catalogs.
func newLoadedHarness(t *testing.T, width, height int) (*Harness, *fakeSource) {
	t.Helper()
	useTempLog(t)
	source := newFakeSource()
	loader := backend.NewLoader(source, 0)
	loader.SetVisaInterval(0)
	t.Cleanup(loader.Stop)
	h := NewHarness(NewModel(loader, width, height, false))
	h.Init()
	if !h.Model().passports.Loaded() || !h.Model().countries.Loaded() {
		t.Fatalf("expected catalogs loaded after init")
	}
	return h, source
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func viewContains(t *testing.T, h *Harness, want string) {
	t.Helper()
	if view := plainView(h); !strings.Contains(view, want) {
		t.Fatalf("expected %q in view, got:\n%s", want, view)
	}
}

func viewLacks(t *testing.T, h *Harness, unwanted string) {
	t.Helper()
	if view := plainView(h); strings.Contains(view, unwanted) {
		t.Fatalf("did not expect %q in view, got:\n%s", unwanted, view)
	}
}
