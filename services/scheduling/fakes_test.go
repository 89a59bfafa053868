package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	providerRepo "khidma/database/repository/provider"
	requestRepo "khidma/database/repository/request"
	scheduleRepo "khidma/database/repository/schedule"
	userRepo "khidma/database/repository/user"
	"khidma/models"
)

// In-memory repository implementations mirroring the store's semantics:
// atomic upserts keyed on the natural unique keys and a capacity-guarded
// increment. Transactions serialize on a single mutex, which satisfies
// the same at-most-one-winner contract the real store provides.

type memProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
	workers   []models.Worker
	services  []models.Service
}

func (r *memProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	return &p, nil
}

func (r *memProviderRepo) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.services {
		if s.ID == id {
			svc := s
			return &svc, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (r *memProviderRepo) ListServices(_ context.Context, providerID string) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memProviderRepo) ListWorkers(_ context.Context, providerID string) ([]models.Worker, error) {
	return r.listWorkers(providerID, nil)
}

func (r *memProviderRepo) ListWorkersByCity(_ context.Context, providerID string, city models.CityCode) ([]models.Worker, error) {
	return r.listWorkers(providerID, &city)
}

func (r *memProviderRepo) listWorkers(providerID string, city *models.CityCode) ([]models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Worker
	for _, w := range r.workers {
		if w.ProviderID != providerID {
			continue
		}
		if city != nil && w.City != *city {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]models.Customer
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &c, nil
}

type memScheduleRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID       int
	providerDays map[string]*models.ProviderDay // key providerID|unix
	workerDays   map[string]*models.ProviderDayWorker
	serviceDays  map[string]*models.ProviderDayService
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{
		providerDays: make(map[string]*models.ProviderDay),
		workerDays:   make(map[string]*models.ProviderDayWorker),
		serviceDays:  make(map[string]*models.ProviderDayService),
	}
}

func (r *memScheduleRepo) newID(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func dayKey(providerID string, date time.Time) string {
	return fmt.Sprintf("%s|%d", providerID, date.Unix())
}

// WithTransaction serializes on one mutex and restores the pre-call
// state when fn fails, matching the store's all-or-nothing contract.
func (r *memScheduleRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snap := r.snapshot()
	if err := fn(ctx); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

type scheduleSnapshot struct {
	nextID       int
	providerDays map[string]*models.ProviderDay
	workerDays   map[string]*models.ProviderDayWorker
	serviceDays  map[string]*models.ProviderDayService
}

func (r *memScheduleRepo) snapshot() scheduleSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := scheduleSnapshot{
		nextID:       r.nextID,
		providerDays: make(map[string]*models.ProviderDay, len(r.providerDays)),
		workerDays:   make(map[string]*models.ProviderDayWorker, len(r.workerDays)),
		serviceDays:  make(map[string]*models.ProviderDayService, len(r.serviceDays)),
	}
	for k, v := range r.providerDays {
		copied := *v
		snap.providerDays[k] = &copied
	}
	for k, v := range r.workerDays {
		copied := *v
		snap.workerDays[k] = &copied
	}
	for k, v := range r.serviceDays {
		copied := *v
		snap.serviceDays[k] = &copied
	}
	return snap
}

func (r *memScheduleRepo) restore(snap scheduleSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = snap.nextID
	r.providerDays = snap.providerDays
	r.workerDays = snap.workerDays
	r.serviceDays = snap.serviceDays
}

func (r *memScheduleRepo) GetOrCreateProviderDay(_ context.Context, providerID string, date time.Time) (*models.ProviderDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dayKey(providerID, date)
	if day, ok := r.providerDays[key]; ok {
		copied := *day
		return &copied, nil
	}
	day := &models.ProviderDay{
		ID:         r.newID("pd"),
		ProviderID: providerID,
		Date:       date,
	}
	r.providerDays[key] = day
	copied := *day
	return &copied, nil
}

func (r *memScheduleRepo) GetProviderDay(_ context.Context, providerID string, date time.Time) (*models.ProviderDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if day, ok := r.providerDays[dayKey(providerID, date)]; ok {
		copied := *day
		return &copied, nil
	}
	return nil, nil
}

func (r *memScheduleRepo) ListProviderDays(_ context.Context, providerID string, from, to time.Time) ([]models.ProviderDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ProviderDay
	for _, day := range r.providerDays {
		if day.ProviderID != providerID {
			continue
		}
		if day.Date.Before(from) || !day.Date.Before(to) {
			continue
		}
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memScheduleRepo) SetProviderDayClosed(ctx context.Context, providerID string, date time.Time, closed bool) (*models.ProviderDay, error) {
	if _, err := r.GetOrCreateProviderDay(ctx, providerID, date); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	day := r.providerDays[dayKey(providerID, date)]
	day.IsClosed = closed
	copied := *day
	return &copied, nil
}

func (r *memScheduleRepo) SetProviderDayBusy(_ context.Context, providerDayID string, busy bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, day := range r.providerDays {
		if day.ID == providerDayID {
			day.IsBusy = busy
			return nil
		}
	}
	return fmt.Errorf("provider day %s not found", providerDayID)
}

func (r *memScheduleRepo) IncrementRequestCount(_ context.Context, providerDayID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, day := range r.providerDays {
		if day.ID == providerDayID {
			day.TotalRequestsCount++
			return nil
		}
	}
	return fmt.Errorf("provider day %s not found", providerDayID)
}

func (r *memScheduleRepo) GetOrCreateWorkerDay(_ context.Context, workerID, providerDayID string) (*models.ProviderDayWorker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := workerID + "|" + providerDayID
	if row, ok := r.workerDays[key]; ok {
		copied := *row
		return &copied, nil
	}
	row := &models.ProviderDayWorker{
		ID:            r.newID("wd"),
		WorkerID:      workerID,
		ProviderDayID: providerDayID,
		Capacity:      models.WorkerDayCapacity,
	}
	r.workerDays[key] = row
	copied := *row
	return &copied, nil
}

func (r *memScheduleRepo) ListWorkerDays(_ context.Context, providerDayIDs []string) ([]models.ProviderDayWorker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(providerDayIDs))
	for _, id := range providerDayIDs {
		wanted[id] = true
	}
	var out []models.ProviderDayWorker
	for _, row := range r.workerDays {
		if wanted[row.ProviderDayID] {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *memScheduleRepo) IncrementAssignment(_ context.Context, workerDayID string) (*models.ProviderDayWorker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.workerDays {
		if row.ID != workerDayID {
			continue
		}
		if row.NbOfAssignedRequests >= row.Capacity {
			return nil, scheduleRepo.ErrCapacityExhausted
		}
		row.NbOfAssignedRequests++
		copied := *row
		return &copied, nil
	}
	return nil, fmt.Errorf("worker day %s not found", workerDayID)
}

func (r *memScheduleRepo) UpsertServiceDay(_ context.Context, serviceID, providerDayID string, closed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := serviceID + "|" + providerDayID
	if row, ok := r.serviceDays[key]; ok {
		row.IsClosed = closed
		return nil
	}
	r.serviceDays[key] = &models.ProviderDayService{
		ID:            r.newID("sd"),
		ServiceID:     serviceID,
		ProviderDayID: providerDayID,
		IsClosed:      closed,
	}
	return nil
}

func (r *memScheduleRepo) ListServiceDays(_ context.Context, serviceID string, providerDayIDs []string) ([]models.ProviderDayService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(providerDayIDs))
	for _, id := range providerDayIDs {
		wanted[id] = true
	}
	var out []models.ProviderDayService
	for _, row := range r.serviceDays {
		if row.ServiceID == serviceID && wanted[row.ProviderDayID] {
			out = append(out, *row)
		}
	}
	return out, nil
}

type memRequestRepo struct {
	mu        sync.Mutex
	nextID    int
	locations map[string]models.Location // key full address
	requests  map[string]models.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{
		locations: make(map[string]models.Location),
		requests:  make(map[string]models.Request),
	}
}

func (r *memRequestRepo) GetOrCreateLocation(_ context.Context, loc models.Location) (*models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.locations[loc.FullAddress]; ok {
		return &stored, nil
	}
	r.nextID++
	loc.ID = fmt.Sprintf("loc-%d", r.nextID)
	r.locations[loc.FullAddress] = loc
	return &loc, nil
}

func (r *memRequestRepo) Create(_ context.Context, req *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = *req
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	return &req, nil
}

// fixture wires a DefaultSchedulingService over the in-memory repos with
// one provider in Riyadh and Jeddah, two Riyadh workers and two services
// (solo needs one worker, crew needs two). Clock is pinned.
type fixture struct {
	svc       *DefaultSchedulingService
	providers *memProviderRepo
	customers *memCustomerRepo
	schedule  *memScheduleRepo
	requests  *memRequestRepo
	now       time.Time
}

func newFixture() *fixture {
	f := &fixture{
		providers: &memProviderRepo{
			providers: map[string]models.Provider{
				"prov-1": {ID: "prov-1", Name: "Lamsa Cleaning", ServedCities: []models.CityCode{CityRiyadh, CityJeddah}},
			},
			workers: []models.Worker{
				{ID: "wrk-1", ProviderID: "prov-1", Name: "Ahmed", City: CityRiyadh},
				{ID: "wrk-2", ProviderID: "prov-1", Name: "Bilal", City: CityRiyadh},
			},
			services: []models.Service{
				{ID: "svc-solo", ProviderID: "prov-1", Name: "Home Cleaning", RequiredNbOfWorkers: 1},
				{ID: "svc-crew", ProviderID: "prov-1", Name: "Deep Cleaning", RequiredNbOfWorkers: 2},
			},
		},
		customers: &memCustomerRepo{
			customers: map[string]models.Customer{
				"cust-1": {ID: "cust-1", Name: "Sara"},
			},
		},
		schedule: newMemScheduleRepo(),
		requests: newMemRequestRepo(),
		now:      time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC),
	}
	f.svc = &DefaultSchedulingService{
		Providers: f.providers,
		Customers: f.customers,
		Schedule:  f.schedule,
		Requests:  f.requests,
		Now:       func() time.Time { return f.now },
	}
	return f
}

// day parses a DD/MM/YYYY date against the fixture clock, failing the
// test on invalid input.
func (f *fixture) day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := ParseBookingDate(date, f.now)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", date, err)
	}
	return d
}

func (f *fixture) providerDay(t *testing.T, date string) *models.ProviderDay {
	t.Helper()
	pd, err := f.schedule.GetProviderDay(context.Background(), "prov-1", f.day(t, date))
	if err != nil {
		t.Fatalf("GetProviderDay: %v", err)
	}
	return pd
}

func (f *fixture) workerAssigned(workerID, providerDayID string) int {
	f.schedule.mu.Lock()
	defer f.schedule.mu.Unlock()
	row, ok := f.schedule.workerDays[workerID+"|"+providerDayID]
	if !ok {
		return 0
	}
	return row.NbOfAssignedRequests
}

func (f *fixture) serviceDayClosed(serviceID, providerDayID string) bool {
	f.schedule.mu.Lock()
	defer f.schedule.mu.Unlock()
	row, ok := f.schedule.serviceDays[serviceID+"|"+providerDayID]
	return ok && row.IsClosed
}

func bookingInput(serviceID, date string, city models.CityCode) models.CreateRequestInput {
	return models.CreateRequestInput{
		ServiceID: serviceID,
		Date:      date,
		Location: models.LocationInput{
			City:        string(city),
			FullAddress: "12 King Fahd Rd, Al Olaya",
			Lat:         24.6877,
			Lng:         46.6857,
		},
	}
}
