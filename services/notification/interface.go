package notification

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken is returned when the user never registered a device.
var ErrNoDeviceToken = errors.New("no device token registered")

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	RegisterDevice(ctx context.Context, userID, token string) error
	NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	tokens TokenStore
	sender Sender
	logger *zap.Logger
}

// NewDefaultNotificationService creates the service. A nil sender disables
// delivery; pushes are then only logged.
func NewDefaultNotificationService(tokens TokenStore, sender Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if tokens == nil {
		return nil, fmt.Errorf("notification service initialization error: token store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{tokens: tokens, sender: sender, logger: logger}, nil
}

func (s *DefaultNotificationService) RegisterDevice(ctx context.Context, userID, token string) error {
	if token == "" {
		return fmt.Errorf("RegisterDevice: empty token")
	}
	return s.tokens.Set(ctx, userID, token)
}

// NotifyUser looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	token, err := s.tokens.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("NotifyUser: %w", err)
	}

	if s.sender == nil {
		s.logger.Info("Push delivery disabled", zap.String("userId", userID), zap.String("title", title))
		return nil
	}

	payload := map[string]string{"role": "user"}
	for k, v := range data {
		payload[k] = v
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("NotifyUser: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}
