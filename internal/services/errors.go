package services

import "errors"

var (
	// ErrListingNotFound is returned when an update targets an identifier
	// with no matching listing.
	ErrListingNotFound = errors.New("listing not found")

	// ErrCategoryNotFound is returned by catalog maintenance when the named
	// category does not exist. Filter-link resolution never returns it;
	// unresolved mappings are skipped there.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrOptionNotFound mirrors ErrCategoryNotFound for option maintenance.
	ErrOptionNotFound = errors.New("category option not found")

	// ErrCreateFailed signals that the listing insert yielded no identifier.
	ErrCreateFailed = errors.New("failed to create listing")
)
