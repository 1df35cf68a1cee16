package credit

import (
	"time"

	"credit-application-system/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxFirstInstallmentMonths bounds how far ahead the first installment may fall.
const MaxFirstInstallmentMonths = 3

type Status string

const (
	StatusCurrent    Status = "CURRENT"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaid       Status = "PAID"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCurrent, StatusInProgress, StatusPaid:
		return true
	}
	return false
}

type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	Customer             *customer.Customer
	CreatedAt            time.Time
}

// NewCredit builds a credit with a fresh code. Only the customer ID needs to be
// set on the reference; the service resolves the full customer before saving.
func NewCredit(value decimal.Decimal, dayFirstInstallment time.Time, installments int, customerID int64) *Credit {
	return &Credit{
		CreditCode:           uuid.New(),
		CreditValue:          value,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: installments,
		Status:               StatusCurrent,
		Customer:             &customer.Customer{ID: customerID},
		CreatedAt:            time.Now(),
	}
}

func (c *Credit) CustomerID() int64 {
	if c.Customer == nil {
		return 0
	}
	return c.Customer.ID
}

// BelongsTo reports whether the credit is owned by the given customer.
func (c *Credit) BelongsTo(customerID int64) bool {
	return c.Customer != nil && c.Customer.ID == customerID
}

// FirstInstallmentWithinWindow compares calendar days only, so a first
// installment exactly MaxFirstInstallmentMonths ahead is still accepted.
func (c *Credit) FirstInstallmentWithinWindow(now time.Time) bool {
	today := truncateToDay(now)
	limit := addMonthsClamped(today, MaxFirstInstallmentMonths)
	return !truncateToDay(c.DayFirstInstallment).After(limit)
}

// addMonthsClamped moves t forward by months, landing on the last day of the
// target month when t's day does not exist there (Nov 30 + 3 is Feb 28).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastOfTarget := firstOfTarget.AddDate(0, 1, -1)
	if d > lastOfTarget.Day() {
		return lastOfTarget
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
