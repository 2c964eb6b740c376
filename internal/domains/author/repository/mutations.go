package repository

import (
	"fmt"

	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/database"
)

// Mutations staged by the repository and the country catalog. Only stores
// in this package know how to apply them.

type insertAuthor struct {
	author model.Author
}

func (m insertAuthor) Describe() string {
	return "insert author " + m.author.ID.String()
}

type updateAuthor struct {
	author model.Author
}

func (m updateAuthor) Describe() string {
	return "update author " + m.author.ID.String()
}

// upsertCountry inserts a country or refreshes its description.
type upsertCountry struct {
	country model.Country
}

func (m upsertCountry) Describe() string {
	return "upsert country " + m.country.ID
}

func unsupportedMutation(m database.Mutation) error {
	return fmt.Errorf("unsupported mutation %T (%s)", m, m.Describe())
}
