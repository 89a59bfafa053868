package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"khidma/models"
)

// ErrCapacityExhausted is returned by IncrementAssignment when the
// worker-day row has no capacity left. Callers treat it the same as the
// pre-check failing: the allocation attempt lost the race.
var ErrCapacityExhausted = errors.New("worker day capacity exhausted")

// ScheduleRepository is the capacity ledger: the source of truth for
// provider-day, worker-day and service-day rows. Provider-day and
// worker-day rows materialize lazily through atomic upserts; an absent
// row is equivalent to a fully open one.
type ScheduleRepository interface {
	// WithTransaction runs fn inside one store transaction. Every repository
	// call made with the context passed to fn joins that transaction. If fn
	// returns an error nothing it wrote persists.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// GetOrCreateProviderDay returns the provider-day row for (providerID,
	// date), creating it open and empty when absent. Idempotent under
	// concurrent callers for the same key.
	GetOrCreateProviderDay(ctx context.Context, providerID string, date time.Time) (*models.ProviderDay, error)
	// GetProviderDay returns the row for (providerID, date), or nil when the
	// day was never materialized.
	GetProviderDay(ctx context.Context, providerID string, date time.Time) (*models.ProviderDay, error)
	// ListProviderDays returns the materialized rows of a provider with
	// from <= date < to.
	ListProviderDays(ctx context.Context, providerID string, from, to time.Time) ([]models.ProviderDay, error)
	// SetProviderDayClosed upserts the row and sets its manual closure flag.
	SetProviderDayClosed(ctx context.Context, providerID string, date time.Time, closed bool) (*models.ProviderDay, error)
	// SetProviderDayBusy sets the derived busy flag.
	SetProviderDayBusy(ctx context.Context, providerDayID string, busy bool) error
	// IncrementRequestCount adds one to the day's monotonic request counter.
	IncrementRequestCount(ctx context.Context, providerDayID string) error

	// GetOrCreateWorkerDay returns the ledger row for (workerID,
	// providerDayID), creating it with zero assignments when absent.
	GetOrCreateWorkerDay(ctx context.Context, workerID, providerDayID string) (*models.ProviderDayWorker, error)
	// ListWorkerDays returns all ledger rows of the given provider days.
	ListWorkerDays(ctx context.Context, providerDayIDs []string) ([]models.ProviderDayWorker, error)
	// IncrementAssignment atomically adds one assignment to the worker-day
	// row, guarded by its capacity. Returns ErrCapacityExhausted when the
	// row is already full.
	IncrementAssignment(ctx context.Context, workerDayID string) (*models.ProviderDayWorker, error)

	// UpsertServiceDay sets the derived closure flag for (serviceID,
	// providerDayID), creating the row when absent.
	UpsertServiceDay(ctx context.Context, serviceID, providerDayID string, closed bool) error
	// ListServiceDays returns the service's flag rows for the given provider days.
	ListServiceDays(ctx context.Context, serviceID string, providerDayIDs []string) ([]models.ProviderDayService, error)
}
