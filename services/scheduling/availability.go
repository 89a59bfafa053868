package scheduling

import (
	"context"
	"errors"
	"time"

	providerRepo "khidma/database/repository/provider"
	"khidma/models"
)

// AvailabilityWindowDays is the horizon of GetUnavailableDates: today
// plus the following days, 30 in total.
const AvailabilityWindowDays = 30

// GetUnavailableDates returns the days within the upcoming window on
// which serviceID cannot take a new request, ascending. A day is
// unavailable when its provider day is manually closed or busy, when the
// service's own closure flag is set, or, with a city filter, when the
// city's free-worker count cannot cover the service's demand. Days that
// were never materialized are fully open.
func (s *DefaultSchedulingService) GetUnavailableDates(ctx context.Context, serviceID, cityFilter string) ([]time.Time, error) {
	svc, err := s.Providers.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	provider, err := s.Providers.GetByID(ctx, svc.ProviderID)
	if err != nil {
		return nil, err
	}

	var city *models.CityCode
	if cityFilter != "" {
		c, err := NormalizeCity(cityFilter)
		if err != nil {
			return nil, err
		}
		// A filter naming a city outside the provider's coverage is a bad
		// request, not a fully-booked calendar.
		if !provider.ServesCity(c) {
			return nil, ErrLocationNotServed
		}
		city = &c
	}

	from := StartOfDay(s.now())
	to := from.AddDate(0, 0, AvailabilityWindowDays)

	days, err := s.Schedule.ListProviderDays(ctx, provider.ID, from, to)
	if err != nil {
		return nil, err
	}
	dayByDate := make(map[int64]*models.ProviderDay, len(days))
	dayIDs := make([]string, 0, len(days))
	for i := range days {
		dayByDate[days[i].Date.Unix()] = &days[i]
		dayIDs = append(dayIDs, days[i].ID)
	}

	serviceDays, err := s.Schedule.ListServiceDays(ctx, svc.ID, dayIDs)
	if err != nil {
		return nil, err
	}
	closedByDayID := make(map[string]bool, len(serviceDays))
	for _, sd := range serviceDays {
		closedByDayID[sd.ProviderDayID] = sd.IsClosed
	}

	// The persisted service flag is provider-wide; a city filter needs the
	// city's own free counts, computed here from the raw ledger.
	var cityWorkers []models.Worker
	rowsByDayID := make(map[string][]models.ProviderDayWorker)
	if city != nil {
		cityWorkers, err = s.Providers.ListWorkersByCity(ctx, provider.ID, *city)
		if err != nil {
			return nil, err
		}
		rows, err := s.Schedule.ListWorkerDays(ctx, dayIDs)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			rowsByDayID[row.ProviderDayID] = append(rowsByDayID[row.ProviderDayID], row)
		}
	}

	var unavailable []time.Time
	for i := 0; i < AvailabilityWindowDays; i++ {
		date := from.AddDate(0, 0, i)
		day := dayByDate[date.Unix()]

		blocked := false
		if day != nil && (day.IsClosed || day.IsBusy) {
			blocked = true
		}
		if !blocked && day != nil && closedByDayID[day.ID] {
			blocked = true
		}
		if !blocked && city != nil {
			freeInCity := len(cityWorkers)
			if day != nil {
				freeInCity = countFreeFrom(cityWorkers, rowsByDayID[day.ID])
			}
			if freeInCity < svc.RequiredNbOfWorkers {
				blocked = true
			}
		}
		if blocked {
			unavailable = append(unavailable, date)
		}
	}
	return unavailable, nil
}

// isDayUnavailable answers the single-day form of GetUnavailableDates
// for the allocator's pre-check.
func (s *DefaultSchedulingService) isDayUnavailable(ctx context.Context, svc *models.Service, day time.Time, city models.CityCode) (bool, error) {
	pd, err := s.Schedule.GetProviderDay(ctx, svc.ProviderID, day)
	if err != nil {
		return false, err
	}
	if pd != nil {
		if pd.IsClosed || pd.IsBusy {
			return true, nil
		}
		serviceDays, err := s.Schedule.ListServiceDays(ctx, svc.ID, []string{pd.ID})
		if err != nil {
			return false, err
		}
		for _, sd := range serviceDays {
			if sd.IsClosed {
				return true, nil
			}
		}
	}

	dayID := ""
	if pd != nil {
		dayID = pd.ID
	}
	freeInCity, err := s.countFreeWorkers(ctx, svc.ProviderID, dayID, &city)
	if err != nil {
		return false, err
	}
	return freeInCity < svc.RequiredNbOfWorkers, nil
}
