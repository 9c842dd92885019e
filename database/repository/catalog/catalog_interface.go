package catalogRepo

import (
	"context"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository defines data access for categories, subcategories and services.
type CatalogRepository interface {
	// GetCategories returns every service category.
	GetCategories(ctx context.Context) ([]models.ServiceCategory, error)
	// GetSubcategories returns every subcategory.
	GetSubcategories(ctx context.Context) ([]models.SubCategory, error)
	// GetServices returns every stored service record, in its raw stored shape.
	GetServices(ctx context.Context) ([]models.ServiceRecord, error)
	// CreateService inserts a new service record.
	CreateService(ctx context.Context, record *models.ServiceRecord) error
	// EnsureIndexes creates the indexes the catalog relies on.
	EnsureIndexes(ctx context.Context) error
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
	services      *mongo.Collection
}

// NewMongoCatalogRepo creates a CatalogRepository backed by the given database.
func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	return &MongoCatalogRepo{
		categories:    db.Collection("categories"),
		subcategories: db.Collection("subcategories"),
		services:      db.Collection("services"),
	}
}
