package bookingRepo

import (
	"context"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines data access for checked-out bookings.
type BookingRepository interface {
	// CreateMany inserts bookings produced by a single checkout.
	CreateMany(ctx context.Context, bookings []models.BookingItem) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.BookingItem, error)
	// ListByUser returns the user's bookings, newest first. An empty status matches all.
	ListByUser(ctx context.Context, userID string, status models.BookingStatus) ([]models.BookingItem, error)
	// UpdateStatus moves a booking from one status to another atomically.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.BookingItem, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository using MongoDB.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}
