package scheduling

import (
	"context"
	"errors"
	"fmt"

	providerRepo "khidma/database/repository/provider"
	scheduleRepo "khidma/database/repository/schedule"
	userRepo "khidma/database/repository/user"
	"khidma/models"
	"khidma/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Allocate converts a customer's request into committed capacity
// reservations. Validation (steps: resolve service and customer, parse
// the date, normalize the city, check the day's availability) runs
// outside any transaction and fails fast; everything that writes runs as
// one atomic unit, so a failed attempt leaves no observable state.
func (s *DefaultSchedulingService) Allocate(ctx context.Context, customerID string, input models.CreateRequestInput) (*models.Request, error) {
	logger := utils.GetLogger()

	svc, err := s.Providers.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	provider, err := s.Providers.GetByID(ctx, svc.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("resolving provider %s of service %s: %w", svc.ProviderID, svc.ID, err)
	}
	if _, err := s.Customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	day, err := ParseBookingDate(input.Date, s.now())
	if err != nil {
		return nil, err
	}
	city, err := NormalizeCity(input.Location.City)
	if err != nil {
		return nil, err
	}
	if !provider.ServesCity(city) {
		return nil, ErrLocationNotServed
	}

	unavailable, err := s.isDayUnavailable(ctx, svc, day, city)
	if err != nil {
		return nil, err
	}
	if unavailable {
		return nil, ErrServiceClosedForDate
	}

	var created *models.Request
	err = s.Schedule.WithTransaction(ctx, func(txCtx context.Context) error {
		pd, err := s.Schedule.GetOrCreateProviderDay(txCtx, provider.ID, day)
		if err != nil {
			return err
		}

		// Workers arrive in stable id order; selection below is first-fit.
		workers, err := s.Providers.ListWorkersByCity(txCtx, provider.ID, city)
		if err != nil {
			return err
		}
		var free []models.ProviderDayWorker
		for _, w := range workers {
			row, err := s.Schedule.GetOrCreateWorkerDay(txCtx, w.ID, pd.ID)
			if err != nil {
				return err
			}
			if row.IsFree() {
				free = append(free, *row)
			}
		}
		if len(free) < svc.RequiredNbOfWorkers {
			return ErrInsufficientWorkers
		}
		selected := free[:svc.RequiredNbOfWorkers]

		loc, err := s.Requests.GetOrCreateLocation(txCtx, models.Location{
			City:        city,
			FullAddress: input.Location.FullAddress,
			MiniAddress: input.Location.MiniAddress,
			Lat:         input.Location.Lat,
			Lng:         input.Location.Lng,
		})
		if err != nil {
			return err
		}

		req := &models.Request{
			ID:            uuid.New().String(),
			ServiceID:     svc.ID,
			CustomerID:    customerID,
			ProviderID:    provider.ID,
			ProviderDayID: pd.ID,
			Date:          day,
			LocationID:    loc.ID,
			Notes:         input.Notes,
			Status:        models.StatusPending,
			CreatedAt:     s.now().UTC(),
		}
		for _, row := range selected {
			req.WorkerIDs = append(req.WorkerIDs, row.WorkerID)
		}
		if err := s.Requests.Create(txCtx, req); err != nil {
			return err
		}
		if err := s.Schedule.IncrementRequestCount(txCtx, pd.ID); err != nil {
			return err
		}

		// Re-validated at commit time: the guard in IncrementAssignment is
		// what actually closes the race between the free check above and
		// the write. Losing it is the same outcome as failing the check.
		for _, row := range selected {
			if _, err := s.Schedule.IncrementAssignment(txCtx, row.ID); err != nil {
				if errors.Is(err, scheduleRepo.ErrCapacityExhausted) {
					return ErrInsufficientWorkers
				}
				return err
			}
		}

		if err := s.propagateDay(txCtx, provider.ID, pd.ID); err != nil {
			return err
		}

		req.Location = loc
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("request allocated",
		zap.String("requestId", created.ID),
		zap.String("serviceId", svc.ID),
		zap.String("providerId", provider.ID),
		zap.String("city", string(city)),
		zap.Time("date", day),
		zap.Strings("workerIds", created.WorkerIDs),
	)
	return created, nil
}
