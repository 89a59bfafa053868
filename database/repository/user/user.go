package userRepo

import (
	"context"

	"khidma/models"
)

// CustomerRepository defines the customer lookups needed by the
// scheduling core. Registration and profile management live elsewhere.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}
