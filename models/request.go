package models

import "time"

// Request statuses. The full lifecycle (accepted, in progress, done,
// cancelled) is driven downstream of the allocation core; allocation
// always creates requests in StatusPending.
const (
	StatusPending    = "Pending"
	StatusAccepted   = "Accepted"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Location is a customer address. Deduplicated by full address. Geo is
// derived from Lat/Lng when the row is created and backs the geospatial
// index.
type Location struct {
	ID          string   `bson:"id" json:"id"`
	City        CityCode `bson:"city" json:"city"`
	FullAddress string   `bson:"fullAddress" json:"fullAddress"`
	MiniAddress string   `bson:"miniAddress,omitempty" json:"miniAddress,omitempty"`
	Lat         float64  `bson:"lat" json:"lat"`
	Lng         float64  `bson:"lng" json:"lng"`
	Geo         GeoPoint `bson:"geo" json:"-"`
}

// Request is a committed allocation: a customer's booking of a service
// on a provider day, with the worker capacity it reserved.
type Request struct {
	ID            string    `bson:"id" json:"id"`
	ServiceID     string    `bson:"serviceId" json:"serviceId"`
	CustomerID    string    `bson:"customerId" json:"customerId"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	ProviderDayID string    `bson:"providerDayId" json:"providerDayId"`
	Date          time.Time `bson:"date" json:"date"`
	WorkerIDs     []string  `bson:"workerIds" json:"workerIds"`
	LocationID    string    `bson:"locationId" json:"locationId"`
	Location      *Location `bson:"-" json:"location,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// LocationInput is the address payload of a new request.
type LocationInput struct {
	City        string  `json:"city" binding:"required"`
	FullAddress string  `json:"fullAddress" binding:"required"`
	MiniAddress string  `json:"miniAddress"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// CreateRequestInput is the payload of POST /api/requests. The customer
// ID comes from the auth middleware, never from the body.
type CreateRequestInput struct {
	ServiceID string        `json:"serviceId" binding:"required"`
	Date      string        `json:"date" binding:"required"` // DD/MM/YYYY
	Location  LocationInput `json:"location" binding:"required"`
	Notes     string        `json:"notes"`
}

// StatusNotification is the payload handed to the notification layer
// after a request changes status.
type StatusNotification struct {
	RequestID  string `json:"requestId"`
	CustomerID string `json:"customerId"`
	ProviderID string `json:"providerId"`
	Status     string `json:"status"`
}
