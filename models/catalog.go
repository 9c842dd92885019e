package models

import "time"

// ServiceCategory is a top-level taxonomy node (e.g. "Cleaning").
type ServiceCategory struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon,omitempty"`
}

// SubCategory belongs to exactly one ServiceCategory.
type SubCategory struct {
	ID         string `bson:"id" json:"id"`
	CategoryID string `bson:"categoryId" json:"categoryId"`
	Name       string `bson:"name" json:"name"`
	Icon       string `bson:"icon" json:"icon,omitempty"`
}

// ProviderSummary is the denormalized provider shown alongside a service.
type ProviderSummary struct {
	ID     string   `bson:"id" json:"id"`
	Name   string   `bson:"name" json:"name"`
	Bio    string   `bson:"bio" json:"bio,omitempty"`
	Skills []string `bson:"skills" json:"skills,omitempty"`
	Avatar string   `bson:"avatar" json:"avatar,omitempty"`
	Rating float64  `bson:"rating" json:"rating,omitempty"`
}

// Availability describes when a provider works, e.g. "Mon - Fri" / "9:00 AM - 5:00 PM".
type Availability struct {
	Days  string `bson:"days" json:"days"`
	Hours string `bson:"hours" json:"hours"`
}

// ServiceItem is the canonical bookable offering. Prices are never optional here;
// legacy shapes are normalized on ingestion.
type ServiceItem struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"categoryId"`
	SubcategoryID   string          `json:"subcategoryId,omitempty"`
	CategoryName    string          `json:"categoryName,omitempty"`
	SubcategoryName string          `json:"subcategoryName,omitempty"`
	Image           string          `json:"image,omitempty"`
	HourlyPrice     float64         `json:"hourlyPrice"`
	OncePrice       float64         `json:"oncePrice"`
	Location        GeoPoint        `json:"location"`
	Rating          float64         `json:"rating"`
	Tags            []string        `json:"tags"`
	Provider        ProviderSummary `json:"provider"`
	Availability    Availability    `json:"availability"`
}

// SearchFields lists the free-text fields the explore search looks at.
func (s ServiceItem) SearchFields() []string {
	fields := []string{
		s.Title,
		s.Provider.Bio,
		s.Provider.Name,
		s.CategoryName,
		s.Description,
		s.SubcategoryName,
	}
	fields = append(fields, s.Provider.Skills...)
	fields = append(fields, s.Tags...)
	return fields
}

// ServiceRecord is the stored/backend shape of a service. Price fields drifted
// over time, so all of them are optional.
type ServiceRecord struct {
	ID            string          `bson:"id" json:"id"`
	Title         string          `bson:"title" json:"title"`
	Description   string          `bson:"description" json:"description"`
	CategoryID    string          `bson:"categoryId" json:"categoryId"`
	SubcategoryID string          `bson:"subcategoryId,omitempty" json:"subcategoryId,omitempty"`
	Image         string          `bson:"image,omitempty" json:"image,omitempty"`
	OncePrice     *float64        `bson:"once_price,omitempty" json:"once_price,omitempty"`
	FixedPrice    *float64        `bson:"fixedPrice,omitempty" json:"fixedPrice,omitempty"`
	HourlyPrice   *float64        `bson:"hourly_price,omitempty" json:"hourly_price,omitempty"`
	Price         *float64        `bson:"price,omitempty" json:"price,omitempty"`
	Location      GeoPoint        `bson:"location" json:"location"`
	Rating        float64         `bson:"rating" json:"rating"`
	Tags          []string        `bson:"tags" json:"tags"`
	Provider      ProviderSummary `bson:"provider" json:"provider"`
	Availability  Availability    `bson:"availability" json:"availability"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt,omitzero"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}
