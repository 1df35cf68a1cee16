package dto

import (
	"fmt"
	"time"

	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type CreditRequest struct {
	CreditValue          *decimal.Decimal `json:"creditValue" validate:"required" swaggertype:"string" example:"1000.00"`
	DayFirstInstallment  string           `json:"dayFirstInstallment" validate:"required,futuredate" example:"2026-12-01"`
	NumberOfInstallments int              `json:"numberOfInstallments" validate:"required,gt=0" example:"8"`
	CustomerID           int64            `json:"customerId" validate:"required,gt=0" example:"1"`
}

func (r *CreditRequest) Validate() error {
	errs := validateStruct(r)
	if r.CreditValue != nil && (!r.CreditValue.IsPositive() || !fitsMoneyColumn(*r.CreditValue)) {
		errs = append(errs, &apperrors.ValidationError{Field: "creditValue", Message: "Invalid creditValue"})
	}
	return toError(errs)
}

// ToEntity assumes Validate has passed.
func (r *CreditRequest) ToEntity() (*credit.Credit, error) {
	day, err := time.Parse(DateLayout, r.DayFirstInstallment)
	if err != nil {
		return nil, fmt.Errorf("%w: dayFirstInstallment must use YYYY-MM-DD", apperrors.ErrInvalidArgument)
	}
	return credit.NewCredit(*r.CreditValue, day, r.NumberOfInstallments, r.CustomerID), nil
}

type CreditView struct {
	CreditCode           string `json:"creditCode" example:"3f2a7c1e-0d4b-4a52-9f55-2b1f6e9c8a10"`
	CreditValue          string `json:"creditValue" example:"1000.00"`
	DayFirstInstallment  string `json:"dayFirstInstallment" example:"2026-12-01"`
	NumberOfInstallments int    `json:"numberOfInstallments" example:"8"`
	Status               string `json:"status" example:"CURRENT"`
	EmailCustomer        string `json:"emailCustomer,omitempty" example:"ana@mail.com"`
	IncomeCustomer       string `json:"incomeCustomer,omitempty" example:"1000.00"`
}

func NewCreditView(c *credit.Credit) CreditView {
	view := CreditView{
		CreditCode:           c.CreditCode.String(),
		CreditValue:          c.CreditValue.StringFixed(2),
		DayFirstInstallment:  c.DayFirstInstallment.Format(DateLayout),
		NumberOfInstallments: c.NumberOfInstallments,
		Status:               string(c.Status),
	}
	if c.Customer != nil {
		view.EmailCustomer = c.Customer.Email
		view.IncomeCustomer = c.Customer.Income.StringFixed(2)
	}
	return view
}

type CreditListView struct {
	CreditCode           string `json:"creditCode" example:"3f2a7c1e-0d4b-4a52-9f55-2b1f6e9c8a10"`
	CreditValue          string `json:"creditValue" example:"1000.00"`
	NumberOfInstallments int    `json:"numberOfInstallments" example:"8"`
}

func NewCreditListView(credits []*credit.Credit) []CreditListView {
	views := make([]CreditListView, 0, len(credits))
	for _, c := range credits {
		views = append(views, CreditListView{
			CreditCode:           c.CreditCode.String(),
			CreditValue:          c.CreditValue.StringFixed(2),
			NumberOfInstallments: c.NumberOfInstallments,
		})
	}
	return views
}
