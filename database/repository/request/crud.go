package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRequestRepo) Create(ctx context.Context, req *models.VoiceRequest) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.VoiceRequest, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var req models.VoiceRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) ListByUser(ctx context.Context, userID string) ([]models.VoiceRequest, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.VoiceRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return requests, nil
}

func (r *MongoRequestRepo) MarkProcessing(ctx context.Context, id string) error {
	return r.set(ctx, id, bson.M{"status": models.VoiceProcessing})
}

func (r *MongoRequestRepo) Complete(ctx context.Context, id, transcription string, structured models.StructuredRequest) error {
	return r.set(ctx, id, bson.M{
		"status":        models.VoiceCompleted,
		"transcription": transcription,
		"summary":       structured.Summary,
		"serviceHint":   structured.ServiceHint,
		"error":         "",
	})
}

func (r *MongoRequestRepo) Fail(ctx context.Context, id, reason string) error {
	return r.set(ctx, id, bson.M{"status": models.VoiceFailed, "error": reason})
}

func (r *MongoRequestRepo) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request %s: %w", id, database.ErrNotFound)
	}
	return nil
}
