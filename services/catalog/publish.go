package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicehub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validate returns a *MissingFieldError naming the first absent required field.
func (r PublishRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return &MissingFieldError{Field: "title"}
	case strings.TrimSpace(r.Description) == "":
		return &MissingFieldError{Field: "description"}
	case strings.TrimSpace(r.CategoryID) == "":
		return &MissingFieldError{Field: "categoryId"}
	case r.OncePrice <= 0 && r.HourlyPrice <= 0:
		return &MissingFieldError{Field: "price"}
	case strings.TrimSpace(r.Availability.Days) == "":
		return &MissingFieldError{Field: "availability.days"}
	case strings.TrimSpace(r.Availability.Hours) == "":
		return &MissingFieldError{Field: "availability.hours"}
	}
	return nil
}

// Publish validates and stores a new listing, then adds it to the snapshot.
func (s *Store) Publish(ctx context.Context, provider models.ProviderSummary, req PublishRequest) (models.ServiceItem, error) {
	if err := req.Validate(); err != nil {
		return models.ServiceItem{}, err
	}
	if _, ok := s.GetCategoryByID(req.CategoryID); !ok {
		return models.ServiceItem{}, fmt.Errorf("%w: %s", ErrUnknownCategory, req.CategoryID)
	}

	once, hourly := req.OncePrice, req.HourlyPrice
	rec := models.ServiceRecord{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Image:         req.Image,
		OncePrice:     &once,
		HourlyPrice:   &hourly,
		Tags:          req.Tags,
		Provider:      provider,
		Availability:  req.Availability,
		CreatedAt:     time.Now(),
	}
	if req.Location != nil {
		rec.Location = *req.Location
	}
	if err := s.repo.CreateService(ctx, &rec); err != nil {
		return models.ServiceItem{}, fmt.Errorf("publish service: %w", err)
	}

	item := NormalizeRecord(rec)

	s.mu.Lock()
	next := s.snap
	items := []models.ServiceItem{item}
	denormalize(items, next.Categories, next.Subcategories)
	item = items[0]
	next.Services = append(append([]models.ServiceItem{}, next.Services...), item)
	s.snap = next
	s.mu.Unlock()

	s.logger.Info("Service published", zap.String("serviceId", item.ID), zap.String("providerId", provider.ID))
	return item, nil
}
