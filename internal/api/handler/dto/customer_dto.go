package dto

import (
	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/pkg/apperrors"
	"credit-application-system/internal/pkg/document"

	"github.com/shopspring/decimal"
)

// Length caps mirror the customers table columns.
type CustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required,max=255" example:"Ana"`
	LastName  string           `json:"lastName" validate:"required,max=255" example:"Souza"`
	CPF       string           `json:"cpf" validate:"required,cpf" example:"28475934625"`
	Income    *decimal.Decimal `json:"income" validate:"required" swaggertype:"string" example:"1000.00"`
	Email     string           `json:"email" validate:"required,max=255,email" example:"ana@mail.com"`
	Password  string           `json:"password" validate:"required,max=255" example:"123456"`
	ZipCode   string           `json:"zipCode" validate:"required,max=20" example:"01310-100"`
	Street    string           `json:"street" validate:"required,max=255" example:"Av. Paulista"`
}

func (r *CustomerRequest) Validate() error {
	errs := validateStruct(r)
	if r.Income != nil && (r.Income.IsNegative() || !fitsMoneyColumn(*r.Income)) {
		errs = append(errs, &apperrors.ValidationError{Field: "income", Message: "income invalid input"})
	}
	return toError(errs)
}

func (r *CustomerRequest) ToEntity() *customer.Customer {
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		document.NormalizeCPF(r.CPF),
		*r.Income,
		r.Email,
		r.Password,
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	)
}

type CustomerUpdateRequest struct {
	FirstName string           `json:"firstName" validate:"required,max=255" example:"Ana"`
	LastName  string           `json:"lastName" validate:"required,max=255" example:"Lima"`
	Income    *decimal.Decimal `json:"income" validate:"required" swaggertype:"string" example:"2500.00"`
	ZipCode   string           `json:"zipCode" validate:"required,max=20" example:"01310-100"`
	Street    string           `json:"street" validate:"required,max=255" example:"Rua Augusta"`
}

func (r *CustomerUpdateRequest) Validate() error {
	errs := validateStruct(r)
	if r.Income != nil && (r.Income.IsNegative() || !fitsMoneyColumn(*r.Income)) {
		errs = append(errs, &apperrors.ValidationError{Field: "income", Message: "income invalid input"})
	}
	return toError(errs)
}

func (r *CustomerUpdateRequest) ToUpdateFields() customer.UpdateFields {
	return customer.UpdateFields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    *r.Income,
		Address:   customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	}
}

// CustomerView never exposes the password.
type CustomerView struct {
	ID        int64  `json:"id" example:"1"`
	FirstName string `json:"firstName" example:"Ana"`
	LastName  string `json:"lastName" example:"Souza"`
	CPF       string `json:"cpf" example:"28475934625"`
	Income    string `json:"income" example:"1000.00"`
	Email     string `json:"email" example:"ana@mail.com"`
	ZipCode   string `json:"zipCode" example:"01310-100"`
	Street    string `json:"street" example:"Av. Paulista"`
}

func NewCustomerView(cust *customer.Customer) CustomerView {
	if cust == nil {
		return CustomerView{}
	}
	return CustomerView{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Income:    cust.Income.StringFixed(2),
		Email:     cust.Email,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
	}
}
