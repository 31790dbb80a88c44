package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/visa-lookup/internal/api"
	"github.com/atomicstack/visa-lookup/internal/backend"
	"github.com/atomicstack/visa-lookup/internal/format/table"
	"github.com/atomicstack/visa-lookup/internal/logging/events"
	"github.com/atomicstack/visa-lookup/internal/selection"
	"github.com/atomicstack/visa-lookup/internal/state"
	"github.com/atomicstack/visa-lookup/internal/ui"
	"github.com/atomicstack/visa-lookup/internal/visa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Config describes user-provided application options.
type Config struct {
	APIURL     string
	Timeout    time.Duration
	Width      int
	Height     int
	ShowFooter bool
	Passport   string
	Country    string
	Days       string
}

// CheckMode reports whether a one-shot lookup was requested.
func (c Config) CheckMode() bool {
	return c.Passport != "" && c.Country != ""
}

// ErrNoTerminal is returned when the interactive page has no terminal to draw on.
var ErrNoTerminal = errors.New("interactive mode needs a terminal; use --passport and --country for a one-shot lookup")

var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func newClient(cfg Config) *api.Client {
	return api.NewClient(cfg.APIURL, api.NewHTTPFetcher(cfg.Timeout))
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	if !isTerminal() {
		return ErrNoTerminal
	}
	loader := backend.NewLoader(newClient(cfg), cfg.Timeout)
	defer func() {
		loader.Stop()
		loader.Wait()
	}()
	model := ui.NewModel(loader, cfg.Width, cfg.Height, cfg.ShowFooter)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// RunCheck resolves a single passport/destination pair and prints the
// outcome to w. Lookup failures are printed and returned.
func RunCheck(ctx context.Context, cfg Config, w io.Writer) error {
	client := newClient(cfg)
	catalogs, err := client.LoadCatalogs(ctx)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	passports := state.NewCatalogStore()
	passports.SetEntries(catalogs.Passports)
	countries := state.NewCatalogStore()
	countries.SetEntries(catalogs.Countries)

	passport, ok := matchCountry(passports, cfg.Passport)
	if !ok {
		return fmt.Errorf("unknown passport %q", cfg.Passport)
	}
	country, ok := matchCountry(countries, cfg.Country)
	if !ok {
		return fmt.Errorf("unknown destination %q", cfg.Country)
	}
	if passport.Slug == country.Slug {
		return fmt.Errorf("passport and destination are both %q", visa.Deslugify(passport.Slug))
	}
	events.App.Check(passport.ID, country.ID, cfg.Days)

	controller := selection.New(passports, countries)
	controller.SetDays(cfg.Days)
	controller.SelectPassport(passport.ID)
	req, ok := controller.SelectCountry(country.ID)
	if !ok {
		return fmt.Errorf("no lookup for %s > %s", passport.Slug, country.Slug)
	}
	rule, lookupErr := client.ResolveVisa(ctx, req.PassportSlug, req.CountrySlug)
	controller.ApplyVisa(selection.VisaResult{Generation: req.Generation, Rule: rule, Err: lookupErr})

	rows := [][]string{
		{visa.PassportLabel, visa.Deslugify(passport.Slug)},
		{visa.CountryLabel, visa.Deslugify(country.Slug)},
	}
	if cfg.Days != "" {
		rows = append(rows, []string{visa.DaysLabel, cfg.Days})
	}
	outcome := controller.Verdict().Text
	if outcome == "" {
		// the rule depends on a stay length that is missing or unreadable
		outcome = visa.EnterDaysHint
	}
	rows = append(rows, []string{visa.VerdictLabel, outcome})
	if err := table.Write(w, rows, nil); err != nil {
		return err
	}
	if lookupErr != nil {
		return fmt.Errorf("resolve visa: %w", lookupErr)
	}
	return nil
}

// matchCountry finds an entry by id, slug or display label, ignoring case.
func matchCountry(store state.CatalogStore, query string) (visa.Country, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return visa.Country{}, false
	}
	if entry, ok := store.Find(q); ok {
		return entry, true
	}
	if entry, ok := store.FindSlug(q); ok {
		return entry, true
	}
	for _, entry := range store.Entries() {
		if strings.EqualFold(visa.Deslugify(entry.Slug), q) {
			return entry, true
		}
	}
	return visa.Country{}, false
}
