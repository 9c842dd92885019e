package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a listing references a category the catalog does not hold.
var ErrUnknownCategory = errors.New("unknown category")

// MissingFieldError names the first required field absent from a listing.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
