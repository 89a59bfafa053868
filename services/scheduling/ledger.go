package scheduling

import (
	"context"

	"khidma/models"
)

// countFreeFrom counts the workers that still have capacity given the
// ledger rows of one provider day. A worker with no ledger row has never
// been assigned anything and counts as fully free.
func countFreeFrom(workers []models.Worker, rows []models.ProviderDayWorker) int {
	assigned := make(map[string]*models.ProviderDayWorker, len(rows))
	for i := range rows {
		assigned[rows[i].WorkerID] = &rows[i]
	}
	free := 0
	for _, w := range workers {
		row, ok := assigned[w.ID]
		if !ok || row.IsFree() {
			free++
		}
	}
	return free
}

// countFreeWorkers returns the provider's free-worker count on one
// provider day, optionally restricted to a city. providerDayID may be
// empty when the day was never materialized; every worker is free then.
func (s *DefaultSchedulingService) countFreeWorkers(ctx context.Context, providerID, providerDayID string, city *models.CityCode) (int, error) {
	var (
		workers []models.Worker
		err     error
	)
	if city != nil {
		workers, err = s.Providers.ListWorkersByCity(ctx, providerID, *city)
	} else {
		workers, err = s.Providers.ListWorkers(ctx, providerID)
	}
	if err != nil {
		return 0, err
	}
	if providerDayID == "" {
		return len(workers), nil
	}
	rows, err := s.Schedule.ListWorkerDays(ctx, []string{providerDayID})
	if err != nil {
		return 0, err
	}
	return countFreeFrom(workers, rows), nil
}
