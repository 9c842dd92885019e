package booking

import (
	"context"
	"errors"
	"fmt"

	"servicehub/database"
	"servicehub/models"
	"servicehub/observability"

	"go.uber.org/zap"
)

// Action is a requested booking transition.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

type edge struct {
	from         []models.BookingStatus
	to           models.BookingStatus
	providerOnly bool
}

var edges = map[Action]edge{
	ActionAccept:   {from: []models.BookingStatus{models.BookingPending}, to: models.BookingUpcoming, providerOnly: true},
	ActionReject:   {from: []models.BookingStatus{models.BookingPending}, to: models.BookingRejected, providerOnly: true},
	ActionComplete: {from: []models.BookingStatus{models.BookingUpcoming}, to: models.BookingCompleted, providerOnly: true},
	ActionCancel:   {from: []models.BookingStatus{models.BookingPending, models.BookingUpcoming}, to: models.BookingCancelled},
}

// ParseAction validates an action name.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := edges[a]
	return a, ok
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.BookingItem, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func involved(b *models.BookingItem, actorID string) bool {
	return b.UserID == actorID || (b.ProviderID != "" && b.ProviderID == actorID)
}

// Get returns a booking the actor takes part in, as customer or provider.
func (s *DefaultBookingService) Get(ctx context.Context, actorID, id string) (*models.BookingItem, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !involved(b, actorID) {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *DefaultBookingService) List(ctx context.Context, userID string, status models.BookingStatus) ([]models.BookingItem, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.Repo.ListByUser(ctx, userID, status)
}

// Transition applies action to the booking. Accept, reject and complete are
// provider actions; cancel is open to both sides.
func (s *DefaultBookingService) Transition(ctx context.Context, actorID, id string, action Action) (*models.BookingItem, error) {
	e, ok := edges[action]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", action)
	}
	b, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if e.providerOnly && b.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if !allowedFrom(e, b.Status) {
		return nil, &TransitionError{From: b.Status, Action: action}
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, b.Status, e.to)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("transition booking: %w", err)
	}

	observability.BookingTransitionsTotal.WithLabelValues(string(e.to)).Inc()
	s.publish(ctx, "booking."+string(e.to), *updated)
	s.notify(ctx, updated)
	return updated, nil
}

func allowedFrom(e edge, status models.BookingStatus) bool {
	for _, from := range e.from {
		if from == status {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) notify(ctx context.Context, b *models.BookingItem) {
	if s.Notifier == nil {
		return
	}
	title := fmt.Sprintf("Booking %s", b.Status)
	body := fmt.Sprintf("%s on %s is now %s", b.Title, b.Date, b.Status)
	err := s.Notifier.NotifyUser(ctx, b.UserID, title, body, map[string]string{
		"bookingId": b.ID,
		"status":    string(b.Status),
	})
	if err != nil {
		s.Logger.Debug("Booking push skipped", zap.String("bookingId", b.ID), zap.Error(err))
	}
}
