package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a structurally invalid value supplied by the caller.
	// It is returned before any storage access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownCountry is returned when an author references a country code
	// that does not exist in the catalog.
	ErrUnknownCountry = fmt.Errorf("%w: unknown country", ErrInvalidArgument)
)

// InvalidArgument builds an error that satisfies errors.Is(err, ErrInvalidArgument).
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// ErrAuthorNotFound is returned by the service layer when a lookup by ID
// finds nothing. The repository itself reports absence as (nil, nil).
var ErrAuthorNotFound = errors.New("author not found")
