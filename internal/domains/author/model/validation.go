package model

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/unicode/norm"
)

// Constants for validation
const (
	MaxNameLength = 150
	MinNameLength = 1
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// Validate checks the fields a caller must supply. CountryID may be empty;
// when present it must look like a country code.
func (a Author) Validate() error {
	err := validation.ValidateStruct(&a,
		validation.Field(&a.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
		validation.Field(&a.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
		validation.Field(&a.CountryID,
			validation.When(a.CountryID != "",
				validation.Match(countryCodePattern).Error("country id must be 2-3 upper-case letters"),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// Validate checks a reference-data row before seeding.
func (c Country) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ID,
			validation.Required,
			validation.Match(countryCodePattern).Error("country id must be 2-3 upper-case letters"),
		),
		validation.Field(&c.Description, validation.Required, validation.Length(1, 255)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// Normalize trims the display names and converts them to NFC so that equal
// names sort identically. CountryID is left untouched: an explicit code is
// stored exactly as given or rejected by Validate.
func Normalize(a Author) Author {
	a.FirstName = norm.NFC.String(strings.TrimSpace(a.FirstName))
	a.LastName = norm.NFC.String(strings.TrimSpace(a.LastName))
	return a
}
