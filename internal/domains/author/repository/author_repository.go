package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// AuthorRepository mediates every read and write of author records.
//
// Reads go to the store and see committed data only. Writes are validated,
// completed with defaults and staged in the unit of work; nothing is durable
// until SaveChanges. The repository never commits on its own and never
// swallows a store error.
type AuthorRepository struct {
	store            Store
	uow              *database.UnitOfWork
	countries        *CountryCatalog
	defaultCountryID string
	logger           zerolog.Logger
}

// Option customises an AuthorRepository
type Option func(*AuthorRepository)

// WithDefaultCountry overrides the CountryID assigned to authors created
// without one.
func WithDefaultCountry(id string) Option {
	return func(r *AuthorRepository) {
		r.defaultCountryID = id
	}
}

// WithLogger sets the logger used for debug traces of staged writes.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *AuthorRepository) {
		r.logger = logger
	}
}

// NewAuthorRepository binds a repository to a store, the caller's unit of
// work and the country catalog used to check foreign keys.
func NewAuthorRepository(store Store, uow *database.UnitOfWork, countries *CountryCatalog, opts ...Option) *AuthorRepository {
	r := &AuthorRepository{
		store:            store,
		uow:              uow,
		countries:        countries,
		defaultCountryID: model.DefaultCountryID,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetAuthors returns one page of authors ordered by last name, first name
// and id. Pages past the end yield an empty slice.
func (r *AuthorRepository) GetAuthors(ctx context.Context, pageNumber, pageSize int) ([]model.Author, error) {
	page := model.PageRequest{Number: pageNumber, Size: pageSize}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.OutOfRange() {
		return []model.Author{}, nil
	}

	return r.store.ListAuthors(ctx, page.Offset(), page.Size)
}

// GetAuthor returns the author with the given id, or (nil, nil) if there
// is none.
func (r *AuthorRepository) GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.InvalidArgument("author id must not be empty")
	}

	return r.store.FindAuthor(ctx, id)
}

// AuthorExists reports whether an author with the given id is persisted
func (r *AuthorRepository) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, model.InvalidArgument("author id must not be empty")
	}

	return r.store.AuthorExists(ctx, id)
}

// CountAuthors returns the number of persisted authors
func (r *AuthorRepository) CountAuthors(ctx context.Context) (int64, error) {
	return r.store.CountAuthors(ctx)
}

// AddAuthor stages the insert of a new author.
//
// Names are normalised and validated, an empty CountryID becomes the
// default country and a missing ID is generated. An explicit CountryID is
// kept verbatim; codes that are not 2-3 upper-case letters are rejected
// with ErrInvalidArgument rather than folded. The final values are
// written back to author so the caller sees the ID that will be stored.
func (r *AuthorRepository) AddAuthor(ctx context.Context, author *model.Author) error {
	if author == nil {
		return model.InvalidArgument("author must not be nil")
	}

	prepared, err := r.prepare(ctx, *author)
	if err != nil {
		return err
	}
	if prepared.ID == uuid.Nil {
		prepared.ID = uuid.New()
	}

	*author = prepared
	r.uow.Stage(insertAuthor{author: prepared})
	r.logger.Debug().
		Str("author_id", prepared.ID.String()).
		Str("country_id", prepared.CountryID).
		Msg("author insert staged")

	return nil
}

// UpdateAuthor stages an update of the names and country of an existing
// author. An update of an unknown id affects no rows.
func (r *AuthorRepository) UpdateAuthor(ctx context.Context, author *model.Author) error {
	if author == nil {
		return model.InvalidArgument("author must not be nil")
	}
	if author.ID == uuid.Nil {
		return model.InvalidArgument("author id must not be empty")
	}

	prepared, err := r.prepare(ctx, *author)
	if err != nil {
		return err
	}

	*author = prepared
	r.uow.Stage(updateAuthor{author: prepared})
	r.logger.Debug().
		Str("author_id", prepared.ID.String()).
		Msg("author update staged")

	return nil
}

// SaveChanges commits everything staged in the unit of work and reports
// whether any row changed. Store errors are returned as is.
func (r *AuthorRepository) SaveChanges(ctx context.Context) (bool, error) {
	result, err := r.uow.Commit(ctx)
	if err != nil {
		return false, err
	}
	return result.Changed(), nil
}

// prepare normalises, validates and resolves the country of a.
func (r *AuthorRepository) prepare(ctx context.Context, a model.Author) (model.Author, error) {
	a = model.Normalize(a)
	if err := a.Validate(); err != nil {
		return model.Author{}, err
	}

	a = model.ResolveDefaultCountry(a, r.defaultCountryID)

	exists, err := r.countries.Exists(ctx, a.CountryID)
	if err != nil {
		return model.Author{}, err
	}
	if !exists {
		return model.Author{}, fmt.Errorf("%w %q", model.ErrUnknownCountry, a.CountryID)
	}

	return a, nil
}
