package repository

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// sqliteConstraint is the primary result code SQLITE_CONSTRAINT
const sqliteConstraint = 19

// requireConstraintError asserts that err is the driver's own error value.
func requireConstraintError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	driverErr, ok := err.(*sqlite.Error)
	require.True(t, ok, "store error must reach the caller unwrapped, got %T: %v", err, err)
	assert.Equal(t, sqliteConstraint, driverErr.Code()&0xff)
}

// seedAuthors commits three BE and two US authors and returns them.
func seedAuthors(t *testing.T, store Store) []model.Author {
	t.Helper()
	ctx := context.Background()
	repo := newTestRepository(store)

	authors := []model.Author{
		{FirstName: "Jacques", LastName: "Brel", CountryID: "BE"},
		{FirstName: "Georges", LastName: "Simenon", CountryID: "BE"},
		{FirstName: "Amélie", LastName: "Nothomb"},
		{FirstName: "Toni", LastName: "Morrison", CountryID: "US"},
		{FirstName: "Mark", LastName: "Twain", CountryID: "US"},
	}
	for i := range authors {
		require.NoError(t, repo.AddAuthor(ctx, &authors[i]))
	}

	changed, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	require.True(t, changed)

	return authors
}

func TestGetAuthors_InvalidPage(t *testing.T) {
	repo := newTestRepository(newTestStore(t))
	ctx := context.Background()

	for _, tc := range []struct{ page, size int }{{0, 3}, {1, 0}, {-1, 3}, {1, -5}} {
		authors, err := repo.GetAuthors(ctx, tc.page, tc.size)
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "page=%d size=%d", tc.page, tc.size)
		assert.Nil(t, authors)
	}
}

func TestGetAuthors_EmptyStore(t *testing.T) {
	repo := newTestRepository(newTestStore(t))

	authors, err := repo.GetAuthors(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.NotNil(t, authors)
	assert.Empty(t, authors)
}

func TestGetAuthors_Paging(t *testing.T) {
	store := newTestStore(t)
	seeded := seedAuthors(t, store)
	repo := newTestRepository(store)
	ctx := context.Background()

	first, err := repo.GetAuthors(ctx, 1, 3)
	require.NoError(t, err)
	second, err := repo.GetAuthors(ctx, 2, 3)
	require.NoError(t, err)
	third, err := repo.GetAuthors(ctx, 3, 3)
	require.NoError(t, err)

	assert.Len(t, first, 3)
	assert.Len(t, second, 2)
	assert.Empty(t, third)

	// pages are disjoint and together cover every author
	seen := map[uuid.UUID]bool{}
	for _, a := range append(first, second...) {
		assert.False(t, seen[a.ID], "author %s returned twice", a.ID)
		seen[a.ID] = true
	}
	for _, a := range seeded {
		assert.True(t, seen[a.ID], "author %s missing", a.ID)
	}

	// ordered by last name
	var lastNames []string
	for _, a := range append(first, second...) {
		lastNames = append(lastNames, a.LastName)
	}
	assert.Equal(t, []string{"Brel", "Morrison", "Nothomb", "Simenon", "Twain"}, lastNames)
}

func TestGetAuthors_PageBeyondIntRange(t *testing.T) {
	store := newTestStore(t)
	seedAuthors(t, store)
	repo := newTestRepository(store)
	ctx := context.Background()

	for _, tc := range []struct{ page, size int }{
		{math.MaxInt, math.MaxInt},
		{math.MaxInt/2 + 2, 2},
		{math.MaxInt, 3},
	} {
		authors, err := repo.GetAuthors(ctx, tc.page, tc.size)
		require.NoError(t, err, "page=%d size=%d", tc.page, tc.size)
		assert.NotNil(t, authors)
		assert.Empty(t, authors, "page=%d size=%d", tc.page, tc.size)
	}

	// a huge page size still returns every author from the first page
	all, err := repo.GetAuthors(ctx, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGetAuthors_StableOrderingForEqualNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := newTestRepository(store)

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.AddAuthor(ctx, &model.Author{FirstName: "Jan", LastName: "Peeters"}))
	}
	_, err := repo.SaveChanges(ctx)
	require.NoError(t, err)

	reader := newTestRepository(store)
	all, err := reader.GetAuthors(ctx, 1, 4)
	require.NoError(t, err)
	require.Len(t, all, 4)

	for page := 1; page <= 4; page++ {
		got, err := reader.GetAuthors(ctx, page, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, all[page-1].ID, got[0].ID)
	}
}

func TestGetAuthor_NilID(t *testing.T) {
	repo := newTestRepository(newTestStore(t))

	a, err := repo.GetAuthor(context.Background(), uuid.Nil)

	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Nil(t, a)
}

func TestGetAuthor_Unknown(t *testing.T) {
	store := newTestStore(t)
	seedAuthors(t, store)
	repo := newTestRepository(store)

	a, err := repo.GetAuthor(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestAddAuthor_DefaultCountryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := uuid.MustParse("ec622423-d92b-430b-a4b9-b14caafdda6c")

	repo := newTestRepository(store)
	require.NoError(t, repo.AddAuthor(ctx, &model.Author{ID: id, FirstName: "adonis", LastName: "cruz v"}))
	changed, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	require.True(t, changed)

	// read back through a new unit of work
	reader := newTestRepository(store)
	got, err := reader.GetAuthor(ctx, id)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "adonis", got.FirstName)
	assert.Equal(t, "cruz v", got.LastName)
	assert.Equal(t, "BE", got.CountryID)
}

func TestAddAuthor_ExplicitCountryKept(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	repo := newTestRepository(store)
	a := model.Author{FirstName: "Toni", LastName: "Morrison", CountryID: "US"}
	require.NoError(t, repo.AddAuthor(ctx, &a))
	_, err := repo.SaveChanges(ctx)
	require.NoError(t, err)

	got, err := newTestRepository(store).GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "US", got.CountryID)
}

func TestAddAuthor_GeneratesID(t *testing.T) {
	repo := newTestRepository(newTestStore(t))
	a := model.Author{FirstName: "Georges", LastName: "Simenon"}

	require.NoError(t, repo.AddAuthor(context.Background(), &a))

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "BE", a.CountryID)
}

func TestAddAuthor_CustomDefaultCountry(t *testing.T) {
	repo := newTestRepository(newTestStore(t), WithDefaultCountry("US"))
	a := model.Author{FirstName: "Mark", LastName: "Twain"}

	require.NoError(t, repo.AddAuthor(context.Background(), &a))

	assert.Equal(t, "US", a.CountryID)
}

func TestAddAuthor_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		author *model.Author
		target error
	}{
		{"nil author", nil, model.ErrInvalidArgument},
		{"empty first name", &model.Author{LastName: "Brel"}, model.ErrInvalidArgument},
		{"blank last name", &model.Author{FirstName: "Jacques", LastName: "   "}, model.ErrInvalidArgument},
		{"name too long", &model.Author{FirstName: strings.Repeat("x", 151), LastName: "Brel"}, model.ErrInvalidArgument},
		{"unknown country", &model.Author{FirstName: "Jacques", LastName: "Brel", CountryID: "ZZ"}, model.ErrUnknownCountry},
		{"lower-case country", &model.Author{FirstName: "Toni", LastName: "Morrison", CountryID: "us"}, model.ErrInvalidArgument},
		{"padded country", &model.Author{FirstName: "Toni", LastName: "Morrison", CountryID: " US"}, model.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			repo := newTestRepository(store)

			err := repo.AddAuthor(context.Background(), tt.author)
			assert.ErrorIs(t, err, tt.target)

			// nothing was staged
			changed, err := repo.SaveChanges(context.Background())
			require.NoError(t, err)
			assert.False(t, changed)
		})
	}
}

func TestAddAuthor_NotVisibleBeforeSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := newTestRepository(store)

	a := model.Author{FirstName: "Hugo", LastName: "Claus"}
	require.NoError(t, repo.AddAuthor(ctx, &a))

	got, err := repo.GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "staged insert is not visible before SaveChanges")

	_, err = repo.SaveChanges(ctx)
	require.NoError(t, err)

	got, err = repo.GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSaveChanges_NothingStaged(t *testing.T) {
	repo := newTestRepository(newTestStore(t))

	changed, err := repo.SaveChanges(context.Background())

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSaveChanges_DuplicateIDFailsAtomically(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seeded := seedAuthors(t, store)

	repo := newTestRepository(store)
	require.NoError(t, repo.AddAuthor(ctx, &model.Author{FirstName: "Emile", LastName: "Verhaeren"}))
	dup := model.Author{ID: seeded[0].ID, FirstName: "Dup", LastName: "Licate"}
	require.NoError(t, repo.AddAuthor(ctx, &dup))

	changed, err := repo.SaveChanges(ctx)

	requireConstraintError(t, err)
	assert.False(t, changed)

	count, err := repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seeded)), count, "no author of the failed batch was persisted")
}

func TestUpdateAuthor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seeded := seedAuthors(t, store)

	repo := newTestRepository(store)
	updated := model.Author{ID: seeded[3].ID, FirstName: "Chloe", LastName: "Wofford"}
	require.NoError(t, repo.UpdateAuthor(ctx, &updated))
	changed, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := newTestRepository(store).GetAuthor(ctx, seeded[3].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chloe", got.FirstName)
	assert.Equal(t, "Wofford", got.LastName)
	assert.Equal(t, "BE", got.CountryID, "empty country is resolved to the default")
}

func TestUpdateAuthor_Errors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := newTestRepository(store)

	err := repo.UpdateAuthor(ctx, &model.Author{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	// unknown id stages fine but changes nothing
	require.NoError(t, repo.UpdateAuthor(ctx, &model.Author{ID: uuid.New(), FirstName: "A", LastName: "B"}))
	changed, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAuthorExistsAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seeded := seedAuthors(t, store)
	repo := newTestRepository(store)

	exists, err := repo.AuthorExists(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.AuthorExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.AuthorExists(ctx, uuid.Nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	count, err := repo.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestStore_ForeignKeyEnforced(t *testing.T) {
	store := newTestStore(t)

	// bypass the repository checks to hit the store constraint
	_, err := store.Apply(context.Background(), []database.Mutation{
		insertAuthor{author: model.Author{ID: uuid.New(), FirstName: "A", LastName: "B", CountryID: "ZZ"}},
	})

	requireConstraintError(t, err)
}
