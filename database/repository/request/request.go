package requestRepo

import (
	"context"

	"khidma/models"
)

// RequestRepository persists requests and their locations.
type RequestRepository interface {
	// GetOrCreateLocation deduplicates locations by full address: the first
	// writer creates the row, later ones get it back.
	GetOrCreateLocation(ctx context.Context, loc models.Location) (*models.Location, error)
	// Create persists a new request record.
	Create(ctx context.Context, req *models.Request) error
	// GetByID retrieves a request with its location resolved.
	GetByID(ctx context.Context, id string) (*models.Request, error)
}
