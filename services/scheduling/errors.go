package scheduling

import "errors"

var (
	ErrIncompleteSelection = errors.New("date and time must both be selected")
	ErrDateUnavailable     = errors.New("date is not bookable")
	ErrUnknownSlot         = errors.New("time slot is not offered")
	ErrUnknownService      = errors.New("service not found")
	ErrInvalidPricingMode  = errors.New("pricing mode must be hourly or once")
)
