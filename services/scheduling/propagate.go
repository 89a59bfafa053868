package scheduling

import (
	"context"
	"fmt"
)

// propagateDay recomputes the derived closure flags of one provider day
// from the current ledger state. It runs inside the allocation
// transaction, after every increment, so it always sees the
// post-increment counts.
//
// Flags are recomputed wholesale for every service of the provider
// rather than patched incrementally; a provider's service count is small
// and the redundant writes buy immunity from drift.
func (s *DefaultSchedulingService) propagateDay(ctx context.Context, providerID, providerDayID string) error {
	free, err := s.countFreeWorkers(ctx, providerID, providerDayID, nil)
	if err != nil {
		return fmt.Errorf("propagation: counting free workers: %w", err)
	}

	if err := s.Schedule.SetProviderDayBusy(ctx, providerDayID, free == 0); err != nil {
		return fmt.Errorf("propagation: setting busy flag: %w", err)
	}

	services, err := s.Providers.ListServices(ctx, providerID)
	if err != nil {
		return fmt.Errorf("propagation: listing services: %w", err)
	}
	for _, svc := range services {
		closed := free < svc.RequiredNbOfWorkers
		if err := s.Schedule.UpsertServiceDay(ctx, svc.ID, providerDayID, closed); err != nil {
			return fmt.Errorf("propagation: updating service day for %s: %w", svc.ID, err)
		}
	}
	return nil
}
