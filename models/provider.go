package models

import "time"

// Provider is a company offering home services through its workers.
// Providers are created and approved through the admin surface; the
// scheduling core only ever reads them.
type Provider struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email,omitempty"`
	PhoneNumber  string     `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Status       string     `bson:"status" json:"status,omitempty"`
	ServedCities []CityCode `bson:"servedCities" json:"servedCities"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ServesCity reports whether the provider serves the given city.
func (p *Provider) ServesCity(city CityCode) bool {
	for _, c := range p.ServedCities {
		if c == city {
			return true
		}
	}
	return false
}

// Worker belongs to exactly one provider and works in exactly one city.
type Worker struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Name       string    `bson:"name" json:"name"`
	City       CityCode  `bson:"city" json:"city"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// Service is one offering of a provider. RequiredNbOfWorkers is the
// worker demand a single request for this service consumes.
type Service struct {
	ID                  string    `bson:"id" json:"id"`
	ProviderID          string    `bson:"providerId" json:"providerId"`
	Name                string    `bson:"name" json:"name"`
	Description         string    `bson:"description,omitempty" json:"description,omitempty"`
	RequiredNbOfWorkers int       `bson:"requiredNbOfWorkers" json:"requiredNbOfWorkers"`
	Price               float64   `bson:"price,omitempty" json:"price,omitempty"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}
