package scheduling

import (
	"context"
	"errors"
	"time"

	providerRepo "khidma/database/repository/provider"
	requestRepo "khidma/database/repository/request"
	scheduleRepo "khidma/database/repository/schedule"
	userRepo "khidma/database/repository/user"
	"khidma/models"
)

// SchedulingService is the provider-day capacity allocation engine: it
// turns customer requests into committed worker-capacity reservations
// and keeps the derived day/service availability flags consistent.
type SchedulingService interface {
	// Allocate validates a new request and atomically reserves worker
	// capacity for it.
	Allocate(ctx context.Context, customerID string, input models.CreateRequestInput) (*models.Request, error)
	// GetUnavailableDates lists the days in the upcoming window on which the
	// service cannot take a new request, optionally restricted to one city.
	GetUnavailableDates(ctx context.Context, serviceID, cityFilter string) ([]time.Time, error)
	// SetProviderDayClosed sets a provider day's manual closure flag.
	SetProviderDayClosed(ctx context.Context, providerID, date string, closed bool) (*models.ProviderDay, error)
	// GetRequestByID returns the current state of a request.
	GetRequestByID(ctx context.Context, id string) (*models.Request, error)
}

// DefaultSchedulingService is the concrete implementation.
type DefaultSchedulingService struct {
	Providers providerRepo.ProviderRepository
	Customers userRepo.CustomerRepository
	Schedule  scheduleRepo.ScheduleRepository
	Requests  requestRepo.RequestRepository

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SetProviderDayClosed upserts the provider day for the given DD/MM/YYYY
// date and sets its manual closure flag.
func (s *DefaultSchedulingService) SetProviderDayClosed(ctx context.Context, providerID, date string, closed bool) (*models.ProviderDay, error) {
	if _, err := s.Providers.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	day, err := ParseBookingDate(date, s.now())
	if err != nil {
		return nil, err
	}
	return s.Schedule.SetProviderDayClosed(ctx, providerID, day, closed)
}

// GetRequestByID returns the request with its location resolved. The
// notification layer reads final request state through this.
func (s *DefaultSchedulingService) GetRequestByID(ctx context.Context, id string) (*models.Request, error) {
	req, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}
