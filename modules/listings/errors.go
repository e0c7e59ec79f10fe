package listings

import "errors"

var (
	ErrListingNotFound       = errors.New("listing not found")
	ErrInvalidID             = errors.New("invalid listing id")
	ErrFailedToCreateListing = errors.New("failed to create listing")
	ErrFailedToUpdateListing = errors.New("failed to update listing")
	ErrFailedToDeleteListing = errors.New("failed to delete listing")
	ErrFailedToListListings  = errors.New("failed to list listings")
)
