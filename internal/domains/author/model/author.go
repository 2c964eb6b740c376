package model

import (
	"github.com/google/uuid"
)

// Author is a catalog author affiliated with exactly one Country.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`

	// CountryID is optional on input; the repository resolves it to the
	// default country before staging an insert.
	CountryID string `json:"country_id" db:"country_id"`
}

// Country is reference data maintained by the seeding process.
type Country struct {
	ID          string `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
}

// FullName returns "FirstName LastName".
func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// HasCountry reports whether a country code is set
func (a Author) HasCountry() bool {
	return a.CountryID != ""
}
