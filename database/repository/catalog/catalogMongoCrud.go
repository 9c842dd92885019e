package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/models"
)

// CreateService inserts a new service document.
func (r *MongoCatalogRepo) CreateService(ctx context.Context, record *models.ServiceRecord) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if _, err := r.services.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create service %s: %w", record.ID, err)
	}
	return nil
}
