package catalog

import (
	"context"

	"servicehub/models"
)

// CatalogService answers lookups against the in-memory catalog snapshot.
// Absence is reported with ok=false or an empty slice, never an error.
type CatalogService interface {
	Refresh(ctx context.Context) error
	Categories() []models.ServiceCategory
	Services() []models.ServiceItem
	GetByID(id string) (models.ServiceItem, bool)
	GetCategoryByID(id string) (models.ServiceCategory, bool)
	GetSubcategoriesByCategory(categoryID string) []models.SubCategory
	GetServicesByCategory(categoryID string) []models.ServiceItem
	Filter(query string, categories []string) []models.ServiceItem
	Explore(query string, categories []string) []models.ServiceItem
	Publish(ctx context.Context, provider models.ProviderSummary, req PublishRequest) (models.ServiceItem, error)
}

// PublishRequest is a provider's new service listing.
type PublishRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	CategoryID    string              `json:"categoryId"`
	SubcategoryID string              `json:"subcategoryId,omitempty"`
	Image         string              `json:"image,omitempty"`
	OncePrice     float64             `json:"oncePrice"`
	HourlyPrice   float64             `json:"hourlyPrice"`
	Tags          []string            `json:"tags,omitempty"`
	Location      *models.GeoPoint    `json:"location,omitempty"`
	Availability  models.Availability `json:"availability"`
}
