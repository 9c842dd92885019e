package messaging

import (
	"context"
	"errors"
	"strings"

	"servicehub/database"
	"servicehub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultMessagingService) Start(ctx context.Context, userID, providerID string) (*models.Conversation, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, errors.New("providerId is required")
	}
	if providerID == userID {
		return nil, ErrSelfConversation
	}

	conv, err := s.repo.FindConversation(ctx, userID, providerID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	conv = &models.Conversation{
		ID:           uuid.New().String(),
		Participants: []string{userID, providerID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	s.logger.Info("Conversation started", zap.String("conversationId", conv.ID))
	return conv, nil
}

func (s *DefaultMessagingService) Authorize(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

func (s *DefaultMessagingService) Send(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len(text) > MaxMessageLength {
		text = text[:MaxMessageLength]
	}
	if _, err := s.Authorize(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.Broadcast(*msg)
	}
	return msg, nil
}

func (s *DefaultMessagingService) History(ctx context.Context, conversationID, userID string, limit int) ([]models.Message, error) {
	if _, err := s.Authorize(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.ListMessages(ctx, conversationID, int64(limit))
}

func (s *DefaultMessagingService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}
