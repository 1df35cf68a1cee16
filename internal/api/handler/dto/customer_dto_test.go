package dto

import (
	"errors"
	"strings"
	"testing"

	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequest = "Valid request"

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validCustomerRequest() CustomerRequest {
	return CustomerRequest{
		FirstName: "Ana",
		LastName:  "Souza",
		CPF:       "28475934625",
		Income:    decimalPtr("1000.00"),
		Email:     "ana@mail.com",
		Password:  "123456",
		ZipCode:   "01310-100",
		Street:    "Av. Paulista",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	out := make(map[string]string, len(verrs))
	for _, v := range verrs {
		out[v.Field] = v.Message
	}
	return out
}

func TestCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CustomerRequest)
		wantField string
		wantMsg   string
	}{
		{validRequest, func(r *CustomerRequest) {}, "", ""},
		{"Formatted cpf", func(r *CustomerRequest) { r.CPF = "284.759.346-25" }, "", ""},
		{"Empty first name", func(r *CustomerRequest) { r.FirstName = "" }, "firstName", "firstName cannot be empty"},
		{"Invalid cpf", func(r *CustomerRequest) { r.CPF = "12345678900" }, "cpf", "Invalid CPF"},
		{"Invalid email", func(r *CustomerRequest) { r.Email = "not-an-email" }, "email", "Invalid email"},
		{"Missing income", func(r *CustomerRequest) { r.Income = nil }, "income", "income invalid input"},
		{"Negative income", func(r *CustomerRequest) { r.Income = decimalPtr("-1") }, "income", "income invalid input"},
		{"Empty street", func(r *CustomerRequest) { r.Street = "" }, "street", "street cannot be empty"},
		{"Names at column width", func(r *CustomerRequest) { r.FirstName = strings.Repeat("a", 255); r.LastName = strings.Repeat("b", 255) }, "", ""},
		{"First name too long", func(r *CustomerRequest) { r.FirstName = strings.Repeat("a", 300) }, "firstName", "firstName must be at most 255 characters"},
		{"Email too long", func(r *CustomerRequest) { r.Email = strings.Repeat("a", 250) + "@mail.com" }, "email", "email must be at most 255 characters"},
		{"Password too long", func(r *CustomerRequest) { r.Password = strings.Repeat("p", 256) }, "password", "password must be at most 255 characters"},
		{"Zip code at column width", func(r *CustomerRequest) { r.ZipCode = strings.Repeat("1", 20) }, "", ""},
		{"Zip code too long", func(r *CustomerRequest) { r.ZipCode = strings.Repeat("1", 21) }, "zipCode", "zipCode must be at most 20 characters"},
		{"Street too long", func(r *CustomerRequest) { r.Street = strings.Repeat("s", 256) }, "street", "street must be at most 255 characters"},
		{"Largest storable income", func(r *CustomerRequest) { r.Income = decimalPtr("99999999999999999.99") }, "", ""},
		{"Income beyond column", func(r *CustomerRequest) { r.Income = decimalPtr("100000000000000000") }, "income", "income invalid input"},
		{"Income rounding past column", func(r *CustomerRequest) { r.Income = decimalPtr("99999999999999999.999") }, "income", "income invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCustomerRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantMsg, fieldsOf(t, err)[tt.wantField])
		})
	}
}

func TestCustomerRequestValidateReportsEveryField(t *testing.T) {
	err := (&CustomerRequest{}).Validate()

	fields := fieldsOf(t, err)
	for _, f := range []string{"firstName", "lastName", "cpf", "income", "email", "password", "zipCode", "street"} {
		assert.Contains(t, fields, f)
	}
}

func TestCustomerRequestToEntity(t *testing.T) {
	req := validCustomerRequest()
	req.CPF = "284.759.346-25"

	cust := req.ToEntity()

	assert.Equal(t, int64(0), cust.ID)
	assert.Equal(t, "28475934625", cust.CPF)
	assert.Equal(t, "123456", cust.Password)
	assert.Equal(t, customer.Address{ZipCode: "01310-100", Street: "Av. Paulista"}, cust.Address)
	assert.True(t, cust.Income.Equal(decimal.RequireFromString("1000")))
}

func TestCustomerUpdateRequest(t *testing.T) {
	t.Run(validRequest, func(t *testing.T) {
		req := CustomerUpdateRequest{FirstName: "Bia", LastName: "Lima", Income: decimalPtr("2500"), ZipCode: "1", Street: "Rua"}

		require.NoError(t, req.Validate())
		fields := req.ToUpdateFields()
		assert.Equal(t, "Bia", fields.FirstName)
		assert.Equal(t, customer.Address{ZipCode: "1", Street: "Rua"}, fields.Address)
	})

	t.Run("Over-long fields", func(t *testing.T) {
		req := CustomerUpdateRequest{
			FirstName: strings.Repeat("a", 256),
			LastName:  "Lima",
			Income:    decimalPtr("1e17"),
			ZipCode:   strings.Repeat("9", 21),
			Street:    "Rua",
		}

		fields := fieldsOf(t, req.Validate())
		assert.Equal(t, "firstName must be at most 255 characters", fields["firstName"])
		assert.Equal(t, "zipCode must be at most 20 characters", fields["zipCode"])
		assert.Equal(t, "income invalid input", fields["income"])
		assert.NotContains(t, fields, "lastName")
	})

	t.Run("Missing fields", func(t *testing.T) {
		fields := fieldsOf(t, (&CustomerUpdateRequest{FirstName: "Bia"}).Validate())
		assert.NotContains(t, fields, "firstName")
		assert.Contains(t, fields, "lastName")
		assert.Contains(t, fields, "income")
	})
}

func TestNewCustomerViewHidesPassword(t *testing.T) {
	view := NewCustomerView(&customer.Customer{
		ID:       4,
		CPF:      "28475934625",
		Income:   decimal.RequireFromString("1000"),
		Password: "secret",
		Address:  customer.Address{ZipCode: "z", Street: "s"},
	})

	assert.Equal(t, int64(4), view.ID)
	assert.Equal(t, "1000.00", view.Income)
	assert.Equal(t, "z", view.ZipCode)
	assert.Equal(t, CustomerView{}, NewCustomerView(nil))
}
