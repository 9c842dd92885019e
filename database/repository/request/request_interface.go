package requestRepo

import (
	"context"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RequestRepository defines data access for recorded voice requests.
type RequestRepository interface {
	Create(ctx context.Context, req *models.VoiceRequest) error
	GetByID(ctx context.Context, id string) (*models.VoiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.VoiceRequest, error)
	// MarkProcessing flags a pending request as being worked on.
	MarkProcessing(ctx context.Context, id string) error
	// Complete stores the processing outcome.
	Complete(ctx context.Context, id, transcription string, structured models.StructuredRequest) error
	// Fail records why processing stopped.
	Fail(ctx context.Context, id, reason string) error
}

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a RequestRepository backed by the "requests" collection.
func NewMongoRequestRepo(db *mongo.Database) RequestRepository {
	return &MongoRequestRepo{coll: db.Collection("requests")}
}
