package repository

import (
	"context"

	"github.com/google/uuid"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// Store is the storage context behind the author repository. Reads see
// committed state only; writes arrive as mutation batches through Apply,
// which runs them in one transaction.
type Store interface {
	database.Applier

	// ListAuthors returns up to limit authors ordered by
	// last name, first name and id, skipping offset rows.
	ListAuthors(ctx context.Context, offset, limit int) ([]model.Author, error)
	// FindAuthor returns (nil, nil) when no row has the given id.
	FindAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error)
	AuthorExists(ctx context.Context, id uuid.UUID) (bool, error)
	CountAuthors(ctx context.Context) (int64, error)

	// FindCountry returns (nil, nil) when the code is unknown.
	FindCountry(ctx context.Context, id string) (*model.Country, error)
	ListCountries(ctx context.Context) ([]model.Country, error)
}

// maxPrealloc caps the slice capacity reserved for one page
const maxPrealloc = 100

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (model.Author, error) {
	var a model.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CountryID)
	return a, err
}

func scanCountry(row rowScanner) (model.Country, error) {
	var c model.Country
	err := row.Scan(&c.ID, &c.Description)
	return c, err
}
