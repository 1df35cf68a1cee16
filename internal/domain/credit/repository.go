package credit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Save(ctx context.Context, credit *Credit) error

	// FindByCreditCode loads the credit together with its owning customer.
	FindByCreditCode(ctx context.Context, code uuid.UUID) (*Credit, error)

	// FindAllByCustomerID returns an empty slice, not an error, when the
	// customer has no credits.
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)
}

type StatusSummary struct {
	Status     Status
	Credits    int64
	TotalValue decimal.Decimal
}

type PortfolioRepository interface {
	SummarizeByStatus(ctx context.Context) ([]StatusSummary, error)
}
