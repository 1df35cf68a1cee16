package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"credit-application-system/internal/pkg/apperrors"
	"credit-application-system/internal/pkg/document"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const DateLayout = time.DateOnly

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// now is replaced in tests.
	now = time.Now
)

// fieldMessages overrides tagMessages for a specific "field.tag" pair.
var fieldMessages = map[string]string{
	"income.required":               "income invalid input",
	"creditValue.required":          "Invalid creditValue",
	"numberOfInstallments.required": "numberOfInstallments is not valid",
	"numberOfInstallments.gt":       "numberOfInstallments is not valid",
	"customerId.required":           "Invalid customerId",
	"customerId.gt":                 "Invalid customerId",
}

var tagMessages = map[string]string{
	"required":   "%s cannot be empty",
	"email":      "Invalid email",
	"cpf":        "Invalid CPF",
	"futuredate": "%s must be a future date in YYYY-MM-DD format",
	"gt":         "%s must be greater than %s",
	"max":        "%s must be at most %s characters",
}

// moneyColumnLimit is the smallest magnitude a NUMERIC(19,2) column rejects.
var moneyColumnLimit = decimal.New(1, 17)

// fitsMoneyColumn reports whether d, once rounded to cents, can be stored.
func fitsMoneyColumn(d decimal.Decimal) bool {
	return d.Round(2).Abs().LessThan(moneyColumnLimit)
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return document.ValidCPF(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
			return isFutureDate(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func isFutureDate(value string) bool {
	day, err := time.Parse(DateLayout, value)
	if err != nil {
		return false
	}
	today, _ := time.Parse(DateLayout, now().Format(DateLayout))
	return day.After(today)
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	tmpl, ok := tagMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	switch strings.Count(tmpl, "%s") {
	case 0:
		return tmpl
	case 1:
		return fmt.Sprintf(tmpl, fe.Field())
	default:
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
}

// validateStruct runs the struct tags and returns every violation as
// apperrors.ValidationErrors, or nil.
func validateStruct(s any) apperrors.ValidationErrors {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ValidationErrors{{Message: err.Error(), Cause: err}}
	}

	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &apperrors.ValidationError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func toError(errs apperrors.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
