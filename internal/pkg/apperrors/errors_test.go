package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDatabaseError(cause, "failed to save credit")

	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[DB_ERROR] failed to save credit", err.Error())
}

func TestTypedErrorsKeepMessageAndKind(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := NewNotFoundError("Id %d not found", 7)
		assert.EqualError(t, err, "Id 7 not found")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("business rule", func(t *testing.T) {
		err := NewBusinessError("Invalid Date")
		assert.EqualError(t, err, "Invalid Date")
		assert.ErrorIs(t, err, ErrBusinessRule)
		assert.NotErrorIs(t, err, ErrForbidden)
	})

	t.Run("access", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", NewAccessError("Contact admin"))
		assert.ErrorIs(t, err, ErrForbidden)

		var accessErr *AccessError
		assert.ErrorAs(t, err, &accessErr)
		assert.Equal(t, "Contact admin", accessErr.Message)
	})
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "cpf", Message: "Invalid CPF!"},
		{Field: "email", Message: "Invalid email!"},
	}

	assert.ErrorIs(t, errs, ErrValidation)
	assert.Equal(t,
		"validation failed for field 'cpf': Invalid CPF!; validation failed for field 'email': Invalid email!",
		errs.Error())

	single := NewValidationError("street", "street cannot be empty!")
	assert.ErrorIs(t, single, ErrValidation)
	var ve *ValidationError
	assert.ErrorAs(t, single, &ve)
	assert.Equal(t, "street", ve.Field)
}
