package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoCatalogRepo) GetCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.ServiceCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *MongoCatalogRepo) GetSubcategories(ctx context.Context) ([]models.SubCategory, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "categoryId", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.subcategories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	var subcategories []models.SubCategory
	if err := cursor.All(ctx, &subcategories); err != nil {
		return nil, fmt.Errorf("failed to decode subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *MongoCatalogRepo) GetServices(ctx context.Context) ([]models.ServiceRecord, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	for cursor.Next(ctx) {
		var rec models.ServiceRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("service cursor failed: %w", err)
	}
	return records, nil
}
