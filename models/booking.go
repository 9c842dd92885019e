package models

import "time"

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingUpcoming, BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// BookingItem is a checked-out cart entry. Bookings are never deleted, only transitioned.
type BookingItem struct {
	ID              string        `bson:"id" json:"id"`
	UserID          string        `bson:"userId" json:"userId"`
	ServiceID       string        `bson:"serviceId" json:"serviceId"`
	ProviderID      string        `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Title           string        `bson:"title" json:"title"`
	Provider        string        `bson:"provider" json:"provider,omitempty"` // display name
	Image           string        `bson:"image" json:"image,omitempty"`
	Date            string        `bson:"date" json:"date,omitempty"`
	Time            string        `bson:"time" json:"time,omitempty"`
	PricingMode     PricingMode   `bson:"pricingMode" json:"pricingMode,omitempty"`
	UnitPrice       float64       `bson:"unitPrice" json:"unitPrice"`
	Quantity        int           `bson:"quantity" json:"quantity"`
	Total           float64       `bson:"total" json:"total"`
	Note            string        `bson:"note,omitempty" json:"note,omitempty"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentIntentID string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingEvent is published on every booking change.
type BookingEvent struct {
	Type      string        `json:"type"` // e.g. "booking.created", "booking.upcoming"
	BookingID string        `json:"bookingId"`
	UserID    string        `json:"userId"`
	ServiceID string        `json:"serviceId"`
	Status    BookingStatus `json:"status"`
	Total     float64       `json:"total"`
	At        time.Time     `json:"at"`
}

// ReminderPayload is the queued reminder push for an upcoming booking.
type ReminderPayload struct {
	UserID    string    `json:"userId"`
	BookingID string    `json:"bookingId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StartsAt  time.Time `json:"startsAt"`
}
