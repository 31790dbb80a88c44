package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/visa-lookup/internal/api"
	"github.com/atomicstack/visa-lookup/internal/logging"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/testutil"
	"github.com/atomicstack/visa-lookup/internal/visa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	passportsJSON = `[{"id":"it","slug":"italy"},{"id":"us","slug":"united-states"}]`
	countriesJSON = `[{"id":"it","slug":"italy"},{"id":"us","slug":"united-states"},{"id":"jp","slug":"japan"}]`
	italyJSON     = `{"countries":[{"countryName":"united-states","visaDays":90},{"countryName":"japan","isEVisa":true}]}`
)

func newAPI(t *testing.T, routes map[string]string) Config {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "visa.log"))
	t.Cleanup(func() { logging.Configure("") })
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return Config{APIURL: srv.URL, Timeout: time.Second}
}

func defaultRoutes() map[string]string {
	return map[string]string{
		"/passport":       passportsJSON,
		"/country":        countriesJSON,
		"/passport/italy": italyJSON,
	}
}

func TestRunCheckPrintsVerdict(t *testing.T) {
	cfg := newAPI(t, defaultRoutes())
	cfg.Passport, cfg.Country = "Italy", "JP"

	var out bytes.Buffer
	require.NoError(t, RunCheck(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Passaporto    Italy")
	assert.Contains(t, out.String(), "Destinazione  Japan")
	assert.Contains(t, out.String(), "È richiesto un visto elettronico")
	assert.NotContains(t, out.String(), visa.DaysLabel)
}

func TestRunCheckGolden(t *testing.T) {
	cases := []struct {
		golden   string
		passport string
		country  string
		days     string
	}{
		{"check_italy_japan.golden", "it", "japan", ""},
		{"check_italy_united_states_120.golden", "Italy", "United States", "120"},
	}
	for _, tc := range cases {
		cfg := newAPI(t, defaultRoutes())
		cfg.Passport, cfg.Country, cfg.Days = tc.passport, tc.country, tc.days
		var out bytes.Buffer
		require.NoError(t, RunCheck(context.Background(), cfg, &out))
		testutil.AssertGolden(t, tc.golden, out.String())
	}
}

func TestRunCheckUsesStayLength(t *testing.T) {
	cfg := newAPI(t, defaultRoutes())
	cfg.Passport, cfg.Country = "it", "united-states"

	cases := map[string]string{
		"":    visa.EnterDaysHint,
		"30":  "Non è richiesto un visto",
		"120": "oltre 90 giorni",
	}
	for days, want := range cases {
		cfg.Days = days
		var out bytes.Buffer
		require.NoError(t, RunCheck(context.Background(), cfg, &out), "days %q", days)
		assert.Contains(t, out.String(), want, "days %q", days)
	}
}

func TestRunCheckRejectsUnknownAndSameCountry(t *testing.T) {
	cfg := newAPI(t, defaultRoutes())

	cfg.Passport, cfg.Country = "atlantis", "jp"
	assert.ErrorContains(t, RunCheck(context.Background(), cfg, &bytes.Buffer{}), "unknown passport")

	cfg.Passport, cfg.Country = "it", "narnia"
	assert.ErrorContains(t, RunCheck(context.Background(), cfg, &bytes.Buffer{}), "unknown destination")

	cfg.Passport, cfg.Country = "it", "italy"
	assert.ErrorContains(t, RunCheck(context.Background(), cfg, &bytes.Buffer{}), "both")
}

func TestRunCheckReportsLookupFailure(t *testing.T) {
	routes := defaultRoutes()
	delete(routes, "/passport/italy")
	cfg := newAPI(t, routes)
	cfg.Passport, cfg.Country = "it", "jp"

	var out bytes.Buffer
	err := RunCheck(context.Background(), cfg, &out)
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, out.String(), visa.LoadFailedMessage)
}

func TestRunCheckMissingRule(t *testing.T) {
	routes := defaultRoutes()
	routes["/passport/italy"] = `{"countries":[]}`
	cfg := newAPI(t, routes)
	cfg.Passport, cfg.Country = "it", "jp"

	err := RunCheck(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, api.ErrNoVisa)
}

func TestRunCheckCatalogFailure(t *testing.T) {
	routes := defaultRoutes()
	delete(routes, "/country")
	cfg := newAPI(t, routes)
	cfg.Passport, cfg.Country = "it", "jp"

	assert.ErrorContains(t, RunCheck(context.Background(), cfg, &bytes.Buffer{}), "load catalogs")
}

func TestRunRequiresTerminal(t *testing.T) {
	restore := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = restore })

	assert.ErrorIs(t, Run(Config{APIURL: "http://localhost", Timeout: time.Second}), ErrNoTerminal)
}

func TestMatchCountry(t *testing.T) {
	entries := state.NewCatalogStore()
	entries.SetEntries([]visa.Country{{ID: "us", Slug: "united-states"}})
	for _, q := range []string{"us", "US", "united-states", "United-States", "United States", " united states "} {
		got, ok := matchCountry(entries, q)
		assert.True(t, ok, q)
		assert.Equal(t, "us", got.ID, q)
	}
	_, ok := matchCountry(entries, "")
	assert.False(t, ok)
}

func TestCheckMode(t *testing.T) {
	assert.False(t, Config{Passport: "it"}.CheckMode())
	assert.True(t, Config{Passport: "it", Country: "jp"}.CheckMode())
}
