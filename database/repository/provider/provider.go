package providerRepo

import (
	"context"

	"khidma/models"
)

// ProviderRepository defines read access to providers, their workers and
// their services. All three are maintained through the admin surface and
// are read-only to the scheduling core.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetServiceByID retrieves a service by its unique ID.
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	// ListServices retrieves all services belonging to a provider.
	ListServices(ctx context.Context, providerID string) ([]models.Service, error)
	// ListWorkers retrieves all workers of a provider, ordered by worker ID.
	ListWorkers(ctx context.Context, providerID string) ([]models.Worker, error)
	// ListWorkersByCity retrieves a provider's workers in one city, ordered by worker ID.
	ListWorkersByCity(ctx context.Context, providerID string, city models.CityCode) ([]models.Worker, error)
}
