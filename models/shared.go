package models

// CityCode is the canonical identifier of a supported city.
// Canonical form is capitalized-first-letter (e.g. "Riyadh").
type CityCode string

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}
