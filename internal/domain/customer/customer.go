package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Address struct {
	ZipCode string
	Street  string
}

// Customer is a registered borrower. CPF and Email are unique in the store;
// Password is stored as given and never interpreted.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	CPF       string
	Income    decimal.Decimal
	Email     string
	Password  string
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateFields carries the only attributes a customer update may change.
type UpdateFields struct {
	FirstName string
	LastName  string
	Income    decimal.Decimal
	Address   Address
}

func NewCustomer(firstName, lastName, cpf string, income decimal.Decimal, email, password string, address Address) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Income:    income,
		Email:     email,
		Password:  password,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Customer) ApplyUpdate(fields UpdateFields) {
	c.FirstName = fields.FirstName
	c.LastName = fields.LastName
	c.Income = fields.Income
	c.Address = fields.Address
	c.UpdatedAt = time.Now()
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
