package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// sqliteStore implements Store on database/sql with the modernc driver.
// IDs are stored as canonical UUID text.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the embedded storage context. The *sql.DB is owned
// by the caller.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) ListAuthors(ctx context.Context, offset, limit int) ([]model.Author, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, country_id
		FROM authors
		ORDER BY last_name, first_name, id
		LIMIT ? OFFSET ?`, limit, offset)
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

func (s *sqliteStore) FindAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, country_id
		FROM authors
		WHERE id = ?`, id.String())

	a, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (s *sqliteStore) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = ?)`, id.String()).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *sqliteStore) CountAuthors(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *sqliteStore) FindCountry(ctx context.Context, id string) (*model.Country, error) {
	c, err := scanCountry(s.db.QueryRowContext(ctx, `SELECT id, description FROM countries WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *sqliteStore) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, description FROM countries ORDER BY id`)
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

func (s *sqliteStore) Apply(ctx context.Context, mutations []database.Mutation) (int64, error) {
	var total int64

	err := database.WithSQLTransaction(ctx, s.db, func(tx *sql.Tx) error {
		for _, m := range mutations {
			var (
				query string
				args  []any
			)

			switch m := m.(type) {
			case insertAuthor:
				query = `INSERT INTO authors (id, first_name, last_name, country_id) VALUES (?, ?, ?, ?)`
				args = []any{m.author.ID.String(), m.author.FirstName, m.author.LastName, m.author.CountryID}
			case updateAuthor:
				query = `UPDATE authors SET first_name = ?, last_name = ?, country_id = ? WHERE id = ?`
				args = []any{m.author.FirstName, m.author.LastName, m.author.CountryID, m.author.ID.String()}
			case upsertCountry:
				query = `
					INSERT INTO countries (id, description) VALUES (?, ?)
					ON CONFLICT (id) DO UPDATE SET description = excluded.description`
				args = []any{m.country.ID, m.country.Description}
			default:
				return unsupportedMutation(m)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
