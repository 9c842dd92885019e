package booking

import (
	"errors"
	"fmt"

	"servicehub/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("cart item quantity must be positive")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("not allowed to act on this booking")
	ErrConflict        = errors.New("booking changed concurrently")
)

// TransitionError is returned when an action is not allowed from the booking's current status.
type TransitionError struct {
	From   models.BookingStatus
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking", e.Action, e.From)
}
