package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/services/notification"
	"servicehub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// VoiceProcessor runs a queued voice request.
type VoiceProcessor interface {
	Process(ctx context.Context, payload models.VoiceTaskPayload) error
}

// Worker consumes the asynq queue for reminders and voice processing.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewWorker registers handlers. A nil voice processor leaves voice tasks unhandled.
func NewWorker(redisOpt asynq.RedisClientOpt, notifier notification.NotificationService, voice VoiceProcessor, logger *zap.Logger) *Worker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifier, logger))
	if voice != nil {
		mux.HandleFunc(tasks.TypeProcessVoice, handleVoiceTask(voice, logger))
	}
	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup a few times.
func (w *Worker) Start() {
	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				w.logger.Info("Task worker started")
				return
			}
			w.logger.Error("Task worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		w.logger.Error("Task worker gave up starting; reminders and voice processing are paused")
	}()
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func handleReminderTask(notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		if tasks.ReminderStale(p, time.Now()) {
			logger.Debug("Reminder dropped, booking already started", zap.String("bookingId", p.BookingID))
			return nil
		}

		err := notifier.NotifyUser(ctx, p.UserID, p.Title, p.Body, map[string]string{
			"bookingId": p.BookingID,
			"type":      "reminder",
		})
		if errors.Is(err, notification.ErrNoDeviceToken) {
			logger.Debug("Reminder dropped, no device", zap.String("userId", p.UserID))
			return nil
		}
		if err != nil {
			logger.Warn("Reminder push failed", zap.String("bookingId", p.BookingID), zap.Error(err))
		}
		return err
	}
}

func handleVoiceTask(voice VoiceProcessor, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.VoiceTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid voice payload: %v: %w", err, asynq.SkipRetry)
		}
		logger.Debug("Processing voice request", zap.String("requestId", p.RequestID))
		return voice.Process(ctx, p)
	}
}
