package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"coursemanager-backend/internal/domains/author/model"
	infraDB "coursemanager-backend/internal/infrastructure/database"
	"coursemanager-backend/pkg/database"
)

// newTestStore returns an in-memory SQLite store with BE and US seeded.
func newTestStore(t *testing.T) Store {
	t.Helper()
	ctx := context.Background()

	db, err := infraDB.OpenSQLite(ctx, infraDB.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, infraDB.EnsureSQLiteSchema(ctx, db))

	store := NewSQLiteStore(db)
	_, err = NewCountryCatalog(store, nil, 0).Seed(ctx,
		model.Country{ID: "BE", Description: "Belgium"},
		model.Country{ID: "US", Description: "United States"},
	)
	require.NoError(t, err)

	return store
}

// newTestRepository binds a repository to a fresh unit of work on store.
func newTestRepository(store Store, opts ...Option) *AuthorRepository {
	uow := database.NewUnitOfWork(store, zerolog.Nop())
	return NewAuthorRepository(store, uow, NewCountryCatalog(store, nil, 0), opts...)
}

// memoryCache is an in-process cache.Cache for tests
type memoryCache struct {
	mu      sync.Mutex
	items   map[string]any
	gets    int
	failGet error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]any{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	if m.failGet != nil {
		return false, m.failGet
	}
	v, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if c, ok := v.(*model.Country); ok {
		*dest.(*model.Country) = *c
	}
	return true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}
