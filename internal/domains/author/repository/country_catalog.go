package repository

import (
	"context"
	"fmt"
	"time"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/cache"
	"coursemanager-backend/pkg/database"
)

const countryCacheKeyPrefix = "country:"

// CountryCatalog gives read access to Country reference data. Lookups go
// through the cache when one is configured; the store stays the source of
// truth, so cache failures only cost a round trip.
type CountryCatalog struct {
	store Store
	cache cache.Cache // nil disables caching
	ttl   time.Duration
}

// NewCountryCatalog creates a catalog over store. Pass a nil cache to read
// straight from the store.
func NewCountryCatalog(store Store, c cache.Cache, ttl time.Duration) *CountryCatalog {
	return &CountryCatalog{
		store: store,
		cache: c,
		ttl:   ttl,
	}
}

// Get returns the country with the given code, or (nil, nil) if unknown.
// Unknown codes are never cached.
func (c *CountryCatalog) Get(ctx context.Context, id string) (*model.Country, error) {
	if id == "" {
		return nil, nil
	}

	key := countryCacheKeyPrefix + id
	if c.cache != nil {
		var cached model.Country
		if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	country, err := c.store.FindCountry(ctx, id)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, nil
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, country, c.ttl)
	}

	return country, nil
}

// Exists reports whether id resolves to a Country
func (c *CountryCatalog) Exists(ctx context.Context, id string) (bool, error) {
	country, err := c.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return country != nil, nil
}

// List returns every country ordered by code. Not cached.
func (c *CountryCatalog) List(ctx context.Context) ([]model.Country, error) {
	return c.store.ListCountries(ctx)
}

// Seed inserts or refreshes reference countries in one transaction and
// evicts their cache entries. It returns the number of rows written.
func (c *CountryCatalog) Seed(ctx context.Context, countries ...model.Country) (int64, error) {
	if len(countries) == 0 {
		return 0, nil
	}

	mutations := make([]database.Mutation, 0, len(countries))
	keys := make([]string, 0, len(countries))
	for _, country := range countries {
		if err := country.Validate(); err != nil {
			return 0, fmt.Errorf("country %q: %w", country.ID, err)
		}
		mutations = append(mutations, upsertCountry{country: country})
		keys = append(keys, countryCacheKeyPrefix+country.ID)
	}

	rows, err := c.store.Apply(ctx, mutations)
	if err != nil {
		return 0, err
	}

	if c.cache != nil {
		_ = c.cache.Delete(ctx, keys...)
	}

	return rows, nil
}
