package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/internal/domains/author/repository"
	"coursemanager-backend/pkg/database"
)

// AuthorService is the application-facing entry point of the catalog.
// Every write operation runs in its own unit of work.
type AuthorService struct {
	store            repository.Store
	countries        *repository.CountryCatalog
	defaultCountryID string
	logger           zerolog.Logger
}

// NewAuthorService creates the service. defaultCountryID is assigned to
// authors created without a country.
func NewAuthorService(store repository.Store, countries *repository.CountryCatalog, defaultCountryID string, logger zerolog.Logger) *AuthorService {
	return &AuthorService{
		store:            store,
		countries:        countries,
		defaultCountryID: defaultCountryID,
		logger:           logger,
	}
}

// Repository opens a fresh unit of work and returns a repository bound
// to it. The caller decides when to call SaveChanges.
func (s *AuthorService) Repository() *repository.AuthorRepository {
	uow := database.NewUnitOfWork(s.store, s.logger)
	return repository.NewAuthorRepository(s.store, uow, s.countries,
		repository.WithDefaultCountry(s.defaultCountryID),
		repository.WithLogger(s.logger),
	)
}

// ListAuthors returns one page of authors with its pagination metadata
func (s *AuthorService) ListAuthors(ctx context.Context, page, size int) (*model.AuthorPage, error) {
	req := model.PageRequest{Number: page, Size: size}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo := s.Repository()

	authors, err := repo.GetAuthors(ctx, req.Number, req.Size)
	if err != nil {
		return nil, err
	}

	total, err := repo.CountAuthors(ctx)
	if err != nil {
		return nil, err
	}

	return &model.AuthorPage{
		Data:       authors,
		Pagination: model.NewPaginationMeta(req, total),
	}, nil
}

// GetAuthor returns the author or ErrAuthorNotFound
func (s *AuthorService) GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, err := s.Repository().GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, model.ErrAuthorNotFound
	}
	return a, nil
}

// CreateAuthor adds an author and commits it
func (s *AuthorService) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	repo := s.Repository()

	a := req.ToEntity()
	if err := repo.AddAuthor(ctx, &a); err != nil {
		return nil, err
	}

	changed, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save author: %w", err)
	}
	if !changed {
		return nil, fmt.Errorf("author %s was not persisted", a.ID)
	}

	s.logger.Info().
		Str("author_id", a.ID.String()).
		Str("country_id", a.CountryID).
		Msg("author created")

	return &a, nil
}

// UpdateAuthor replaces the names and country of an existing author
func (s *AuthorService) UpdateAuthor(ctx context.Context, id uuid.UUID, req model.CreateAuthorRequest) (*model.Author, error) {
	repo := s.Repository()

	a := req.ToEntity()
	a.ID = id
	if err := repo.UpdateAuthor(ctx, &a); err != nil {
		return nil, err
	}

	changed, err := repo.SaveChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	if !changed {
		return nil, model.ErrAuthorNotFound
	}

	s.logger.Info().Str("author_id", a.ID.String()).Msg("author updated")

	return &a, nil
}

// Countries exposes the reference data used to validate authors
func (s *AuthorService) Countries() *repository.CountryCatalog {
	return s.countries
}
