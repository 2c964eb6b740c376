package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// postgresStore implements Store on a pgx pool
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL storage context.
// The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) ListAuthors(ctx context.Context, offset, limit int) ([]model.Author, error) {
	query := `
        SELECT id, first_name, last_name, country_id
        FROM authors
        ORDER BY last_name, first_name, id
        LIMIT $1 OFFSET $2
    `

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]model.Author, 0, min(limit, maxPrealloc))
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return authors, nil
}

func (s *postgresStore) FindAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
        SELECT id, first_name, last_name, country_id
        FROM authors
        WHERE id = $1
    `

	a, err := scanAuthor(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (s *postgresStore) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *postgresStore) CountAuthors(ctx context.Context) (int64, error) {
	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *postgresStore) FindCountry(ctx context.Context, id string) (*model.Country, error) {
	c, err := scanCountry(s.pool.QueryRow(ctx, `SELECT id, description FROM countries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *postgresStore) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, description FROM countries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := []model.Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// Apply runs the batch in one transaction and sums the affected rows.
// Driver errors are returned unmodified (*pgconn.PgError for constraint
// violations).
func (s *postgresStore) Apply(ctx context.Context, mutations []database.Mutation) (int64, error) {
	return database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (int64, error) {
		var total int64

		for _, m := range mutations {
			var (
				sql  string
				args []any
			)

			switch m := m.(type) {
			case insertAuthor:
				sql = `INSERT INTO authors (id, first_name, last_name, country_id) VALUES ($1, $2, $3, $4)`
				args = []any{m.author.ID, m.author.FirstName, m.author.LastName, m.author.CountryID}
			case updateAuthor:
				sql = `UPDATE authors SET first_name = $2, last_name = $3, country_id = $4 WHERE id = $1`
				args = []any{m.author.ID, m.author.FirstName, m.author.LastName, m.author.CountryID}
			case upsertCountry:
				sql = `
                    INSERT INTO countries (id, description) VALUES ($1, $2)
                    ON CONFLICT (id) DO UPDATE SET description = EXCLUDED.description
                `
				args = []any{m.country.ID, m.country.Description}
			default:
				return 0, unsupportedMutation(m)
			}

			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			total += tag.RowsAffected()
		}

		return total, nil
	})
}
