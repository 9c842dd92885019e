package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicehub/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	// ReminderLead is how long before a booking starts its reminder fires.
	ReminderLead = 24 * time.Hour
)

// ErrReminderTooLate is returned for bookings starting within ReminderLead.
var ErrReminderTooLate = errors.New("booking starts too soon for a reminder")

// ReminderTaskID keys the reminder of one booking. Enqueueing a second
// reminder for the same booking fails with asynq.ErrTaskIDConflict.
func ReminderTaskID(bookingID string) string {
	return TypeSendReminder + ":" + bookingID
}

// NewReminderTask builds the push sent ReminderLead before payload.StartsAt.
func NewReminderTask(payload models.ReminderPayload, now time.Time) (*asynq.Task, []asynq.Option, error) {
	fireAt := payload.StartsAt.Add(-ReminderLead)
	if payload.StartsAt.IsZero() || !fireAt.After(now) {
		return nil, nil, ErrReminderTooLate
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode reminder: %w", err)
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.MaxRetry(3),
		// The id stays reserved until the booking starts.
		asynq.Retention(ReminderLead),
	}
	return asynq.NewTask(TypeSendReminder, b), opts, nil
}

// ReminderStale reports whether the booking already started when the reminder runs.
func ReminderStale(p models.ReminderPayload, now time.Time) bool {
	return !p.StartsAt.IsZero() && !now.Before(p.StartsAt)
}
