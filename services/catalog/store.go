package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/observability"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the catalog. Refresh swaps it whole.
type Snapshot struct {
	Categories    []models.ServiceCategory
	Subcategories []models.SubCategory
	Services      []models.ServiceItem
	LoadedAt      time.Time
}

// Store implements CatalogService over a CatalogRepository.
type Store struct {
	repo   repository.CatalogRepository
	logger *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates an empty catalog store. Call Refresh to load it.
func NewStore(repo repository.CatalogRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, logger: logger}
}

// Refresh is the only path that fetches catalog data.
func (s *Store) Refresh(ctx context.Context) error {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	subcategories, err := s.repo.GetSubcategories(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	records, err := s.repo.GetServices(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}

	services := make([]models.ServiceItem, 0, len(records))
	for _, rec := range records {
		services = append(services, NormalizeRecord(rec))
	}
	denormalize(services, categories, subcategories)

	s.mu.Lock()
	s.snap = Snapshot{
		Categories:    categories,
		Subcategories: subcategories,
		Services:      services,
		LoadedAt:      time.Now(),
	}
	s.mu.Unlock()

	observability.CatalogServices.Set(float64(len(services)))
	s.logger.Info("Catalog refreshed",
		zap.Int("categories", len(categories)),
		zap.Int("subcategories", len(subcategories)),
		zap.Int("services", len(services)),
	)
	return nil
}

// Snapshot returns the current snapshot. Callers must not modify its slices.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
