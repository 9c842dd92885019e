package messagingRepo

import (
	"context"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MessagingRepository persists conversations and their messages.
type MessagingRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	// FindConversation returns the conversation holding exactly these two participants.
	FindConversation(ctx context.Context, a, b string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	// AddMessage stores msg and bumps the conversation's last message.
	AddMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns up to limit of the latest messages, oldest first.
	ListMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)
}

// MongoMessagingRepo implements MessagingRepository using MongoDB.
type MongoMessagingRepo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewMongoMessagingRepo(db *mongo.Database) MessagingRepository {
	return &MongoMessagingRepo{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}
