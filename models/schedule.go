package models

import "time"

// WorkerDayCapacity is the number of requests a single worker can take
// on one day under the current policy.
const WorkerDayCapacity = 2

// ProviderDay is the capacity state of one provider on one calendar day.
// Days are materialized lazily: no row means fully open with zero requests.
// Date is always a UTC-midnight instant.
type ProviderDay struct {
	ID                 string    `bson:"id" json:"id"`
	ProviderID         string    `bson:"providerId" json:"providerId"`
	Date               time.Time `bson:"date" json:"date"`
	IsClosed           bool      `bson:"isClosed" json:"isClosed"` // manual closure set by the provider
	IsBusy             bool      `bson:"isBusy" json:"isBusy"`     // derived: no free worker capacity anywhere
	TotalRequestsCount int       `bson:"totalRequestsCount" json:"totalRequestsCount"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderDayWorker is the ledger entry for one worker on one provider day.
// NbOfAssignedRequests only ever grows in this core; there is no release path.
type ProviderDayWorker struct {
	ID                   string `bson:"id" json:"id"`
	WorkerID             string `bson:"workerId" json:"workerId"`
	ProviderDayID        string `bson:"providerDayId" json:"providerDayId"`
	NbOfAssignedRequests int    `bson:"nbOfAssignedRequests" json:"nbOfAssignedRequests"`
	Capacity             int    `bson:"capacity" json:"capacity"`
}

// IsFree reports whether the worker still has capacity left on this day.
func (w *ProviderDayWorker) IsFree() bool {
	return w.NbOfAssignedRequests < w.Capacity
}

// ProviderDayService is the derived closure flag for one service on one
// provider day. Recomputed wholesale by the propagator after every
// allocation, never patched incrementally.
type ProviderDayService struct {
	ID            string `bson:"id" json:"id"`
	ServiceID     string `bson:"serviceId" json:"serviceId"`
	ProviderDayID string `bson:"providerDayId" json:"providerDayId"`
	IsClosed      bool   `bson:"isClosed" json:"isClosed"`
}
