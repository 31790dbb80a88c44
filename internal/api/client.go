package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atomicstack/visa-lookup/internal/visa"
	"golang.org/x/sync/errgroup"
)

// Client talks to the visa REST API rooted at baseURL.
type Client struct {
	baseURL string
	fetcher Fetcher
}

// NewClient returns a client for baseURL using fetcher for transport.
func NewClient(baseURL string, fetcher Fetcher) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher}
}

// Passports lists passport-issuing countries.
func (c *Client) Passports(ctx context.Context) ([]visa.Country, error) {
	return c.catalog(ctx, "/passport")
}

// Countries lists destination countries.
func (c *Client) Countries(ctx context.Context) ([]visa.Country, error) {
	return c.catalog(ctx, "/country")
}

func (c *Client) catalog(ctx context.Context, path string) ([]visa.Country, error) {
	var entries []visa.Country
	if err := c.fetcher.FetchJSON(ctx, c.baseURL+path, &entries); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return entries, nil
}

// VisaTable fetches the full visa table for a passport slug.
func (c *Client) VisaTable(ctx context.Context, passportSlug string) (visa.Table, error) {
	var table *visa.Table
	endpoint := c.baseURL + "/passport/" + url.PathEscape(passportSlug)
	if err := c.fetcher.FetchJSON(ctx, endpoint, &table); err != nil {
		return visa.Table{}, fmt.Errorf("load visa table for %s: %w", passportSlug, err)
	}
	if table == nil || table.Countries == nil {
		return visa.Table{}, fmt.Errorf("visa table for %s: %w", passportSlug, ErrNoData)
	}
	return *table, nil
}

// ResolveVisa returns the rule for travelling to countrySlug on passportSlug.
func (c *Client) ResolveVisa(ctx context.Context, passportSlug, countrySlug string) (visa.Rule, error) {
	table, err := c.VisaTable(ctx, passportSlug)
	if err != nil {
		return visa.Rule{}, err
	}
	rule, ok := table.Find(countrySlug)
	if !ok {
		return visa.Rule{}, fmt.Errorf("%s to %s: %w", passportSlug, countrySlug, ErrNoVisa)
	}
	return rule, nil
}

// Catalogs bundles both reference lists.
type Catalogs struct {
	Passports []visa.Country
	Countries []visa.Country
}

// LoadCatalogs fetches passports and countries concurrently. The first
// failure cancels the other request.
func (c *Client) LoadCatalogs(ctx context.Context) (Catalogs, error) {
	var out Catalogs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		passports, err := c.Passports(ctx)
		if err != nil {
			return err
		}
		out.Passports = passports
		return nil
	})
	g.Go(func() error {
		countries, err := c.Countries(ctx)
		if err != nil {
			return err
		}
		out.Countries = countries
		return nil
	})
	if err := g.Wait(); err != nil {
		return Catalogs{}, err
	}
	return out, nil
}
