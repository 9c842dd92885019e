package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "3:04 PM"
)

// Checkout turns every cart entry into a pending booking, charges the total
// when payments are enabled, then clears the cart. The cart is left intact
// when payment or persistence fails.
func (s *DefaultBookingService) Checkout(ctx context.Context, userID string, c CartSource) (*CheckoutResult, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	bookings := make([]models.BookingItem, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, item.ID)
		}
		b := models.BookingItem{
			ID:          uuid.NewString(),
			UserID:      userID,
			ServiceID:   item.ID,
			Title:       item.Title,
			Provider:    item.Provider,
			Image:       item.Image,
			Date:        item.Date,
			Time:        item.Time,
			PricingMode: item.PricingMode,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			Total:       item.Price * float64(item.Quantity),
			Note:        item.Note,
			Status:      models.BookingPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if s.Catalog != nil {
			if svc, ok := s.Catalog.GetByID(item.ID); ok {
				b.ProviderID = svc.Provider.ID
			}
		}
		total += b.Total
		bookings = append(bookings, b)
	}

	result := &CheckoutResult{Total: total}
	if s.Payments != nil && total > 0 {
		intent, err := s.Payments.CreateIntent(ctx, toMinorUnits(total), s.Currency, map[string]string{"userId": userID})
		if err != nil {
			return nil, fmt.Errorf("checkout payment: %w", err)
		}
		result.Payment = intent
		for i := range bookings {
			bookings[i].PaymentIntentID = intent.ID
		}
	}

	if err := s.Repo.CreateMany(ctx, bookings); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	for _, b := range bookings {
		s.publish(ctx, "booking.created", b)
		s.scheduleReminder(ctx, b, now)
	}

	result.Bookings = bookings
	result.CartSync = c.Clear(ctx)
	if !result.CartSync.Persisted {
		s.Logger.Warn("Cart cleared in memory only", zap.String("userId", userID), zap.Error(result.CartSync.Err))
	}

	s.Logger.Info("Checkout completed",
		zap.String("userId", userID),
		zap.Int("bookings", len(bookings)),
		zap.Float64("total", total),
	)
	return result, nil
}

// startOf parses the booking's date and time labels in the local zone.
func startOf(b models.BookingItem) (time.Time, bool) {
	if b.Date == "" || b.Time == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, b.Date+" "+b.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b models.BookingItem, now time.Time) {
	if s.Reminders == nil {
		return
	}
	start, ok := startOf(b)
	if !ok {
		return
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		UserID:    b.UserID,
		BookingID: b.ID,
		Title:     "Upcoming booking",
		Body:      fmt.Sprintf("%s is scheduled for %s at %s", b.Title, b.Date, b.Time),
		StartsAt:  start,
	}, now)
	if errors.Is(err, tasks.ErrReminderTooLate) {
		return
	}
	if err != nil {
		s.Logger.Error("Failed to build reminder", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	_, err = s.Reminders.EnqueueContext(ctx, task, opts...)
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict):
		s.Logger.Debug("Reminder already scheduled", zap.String("bookingId", b.ID))
	case err != nil:
		s.Logger.Error("Failed to schedule reminder", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) publish(ctx context.Context, eventType string, b models.BookingItem) {
	if s.Events == nil {
		return
	}
	err := s.Events.Publish(ctx, models.BookingEvent{
		Type:      eventType,
		BookingID: b.ID,
		UserID:    b.UserID,
		ServiceID: b.ServiceID,
		Status:    b.Status,
		Total:     b.Total,
		At:        time.Now(),
	})
	if err != nil {
		s.Logger.Warn("Booking event not published", zap.String("type", eventType), zap.Error(err))
	}
}
