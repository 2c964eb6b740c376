package model

// DefaultCountryID is used when no other fallback is configured.
const DefaultCountryID = "BE"

// ResolveDefaultCountry returns a copy of a whose CountryID is set to
// fallback when it was empty. An explicit CountryID is never overridden.
func ResolveDefaultCountry(a Author, fallback string) Author {
	if !a.HasCountry() {
		a.CountryID = fallback
	}
	return a
}
