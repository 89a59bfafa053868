package models

import "time"

// Customer is the person booking a service. Registration, OTP and
// profile management live outside the scheduling core; it only resolves
// customers by ID.
type Customer struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email,omitempty"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}
