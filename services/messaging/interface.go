package messaging

import (
	"context"
	"errors"
	"time"

	"servicehub/database/repository"
	"servicehub/models"

	"go.uber.org/zap"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message text is required")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
	MaxMessageLength    = 4000
)

// MessagingService manages user/provider conversations.
type MessagingService interface {
	// Start returns the existing conversation between the two parties or creates one.
	Start(ctx context.Context, userID, providerID string) (*models.Conversation, error)
	Send(ctx context.Context, conversationID, senderID, text string) (*models.Message, error)
	History(ctx context.Context, conversationID, userID string, limit int) ([]models.Message, error)
	Conversations(ctx context.Context, userID string) ([]models.Conversation, error)
	// Authorize returns the conversation when userID may read it.
	Authorize(ctx context.Context, conversationID, userID string) (*models.Conversation, error)
}

type DefaultMessagingService struct {
	repo   repository.MessagingRepository
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewDefaultMessagingService(repo repository.MessagingRepository, hub *Hub, logger *zap.Logger) *DefaultMessagingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultMessagingService{repo: repo, hub: hub, logger: logger, now: time.Now}
}
