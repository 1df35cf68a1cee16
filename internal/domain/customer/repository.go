package customer

import (
	"context"
)

type Repository interface {
	// Save inserts the customer when ID is zero and assigns the generated ID,
	// otherwise it updates the stored row.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	Delete(ctx context.Context, customerID int64) error
}
