package booking

import (
	"context"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/cart"
	"servicehub/services/events"
	"servicehub/services/notification"
	"servicehub/services/tasks"

	"go.uber.org/zap"
)

// BookingService checks carts out into bookings and moves bookings through their lifecycle.
type BookingService interface {
	Checkout(ctx context.Context, userID string, c CartSource) (*CheckoutResult, error)
	Get(ctx context.Context, actorID, id string) (*models.BookingItem, error)
	List(ctx context.Context, userID string, status models.BookingStatus) ([]models.BookingItem, error)
	Transition(ctx context.Context, actorID, id string, action Action) (*models.BookingItem, error)
}

// CartSource is the cart a checkout drains.
type CartSource interface {
	Items() []models.CartItem
	Clear(ctx context.Context) cart.SyncResult
}

// ServiceLookup resolves the provider behind a booked service.
type ServiceLookup interface {
	GetByID(id string) (models.ServiceItem, bool)
}

// CheckoutResult is what a successful checkout returns to the client.
type CheckoutResult struct {
	Bookings []models.BookingItem `json:"bookings"`
	Total    float64              `json:"total"`
	Payment  *PaymentIntent       `json:"payment,omitempty"`
	CartSync cart.SyncResult      `json:"cartSync"`
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      repository.BookingRepository
	Catalog   ServiceLookup
	Payments  PaymentProcessor
	Events    events.Publisher
	Reminders tasks.Enqueuer
	Notifier  notification.NotificationService
	Currency  string
	Logger    *zap.Logger
}

// NewDefaultBookingService wires the service. Payments, Events, Reminders and
// Notifier are optional.
func NewDefaultBookingService(repo repository.BookingRepository, catalog ServiceLookup, currency string, logger *zap.Logger) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &DefaultBookingService{
		Repo:     repo,
		Catalog:  catalog,
		Currency: currency,
		Logger:   logger,
	}
}
