package cart

import "errors"

var (
	// ErrMissingID is returned when a cart update carries no service id.
	ErrMissingID = errors.New("cart item id is required")
	// ErrItemNotFound is returned when a quantity update targets an absent entry.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrNotLoaded is returned while the stored cart could not be loaded yet.
	ErrNotLoaded = errors.New("cart not loaded")
)
