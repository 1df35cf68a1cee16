package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creditColumns = []string{"id", "credit_code", "credit_value", "day_first_installment", "number_of_installments", "status", "created_at"}

func setupCreditRepo(t *testing.T) (context.Context, *CreditRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	return context.Background(), NewCreditRepository(mockPool, logger), mockPool
}

func TestSaveCreditWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()
	c := credit.NewCredit(decimal.RequireFromString("1000.00"), time.Now().AddDate(0, 0, 40), 8, 1)
	createdAt := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCreditQuery)).WithArgs(
		c.CreditCode, c.CreditValue, c.DayFirstInstallment, c.NumberOfInstallments, "CURRENT", int64(1),
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), createdAt))

	err := repo.Save(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, int64(11), c.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveCreditWithoutCustomer(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()
	c := credit.NewCredit(decimal.NewFromInt(1), time.Now(), 1, 0)

	assert.ErrorIs(t, repo.Save(ctx, c), apperrors.ErrInvalidArgument)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCreditByCodeReturnsOwner(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()
	code := uuid.New()
	day := time.Date(2026, time.November, 28, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(findCreditByCodeQuery)).WithArgs(code).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, creditColumns...), "id", "email", "income")).
			AddRow(int64(3), code.String(), "1000.00", day, 8, "CURRENT", now, int64(2), "owner@mail.com", "5000.00"))

	c, err := repo.FindByCreditCode(ctx, code)

	require.NoError(t, err)
	assert.Equal(t, code, c.CreditCode)
	assert.Equal(t, credit.StatusCurrent, c.Status)
	assert.Equal(t, 8, c.NumberOfInstallments)
	assert.Equal(t, int64(2), c.CustomerID())
	assert.Equal(t, "owner@mail.com", c.Customer.Email)
	assert.True(t, c.Customer.Income.Equal(decimal.RequireFromString("5000")))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCreditByCodeReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()
	code := uuid.New()

	mockPool.ExpectQuery(regexp.QuoteMeta(findCreditByCodeQuery)).WithArgs(code).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, creditColumns...), "id", "email", "income")))

	c, err := repo.FindByCreditCode(ctx, code)

	assert.Nil(t, c)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindAllCreditsByCustomer(t *testing.T) {
	t.Run("returns rows attached to the customer", func(t *testing.T) {
		ctx, repo, mockPool := setupCreditRepo(t)
		defer mockPool.Close()
		now := time.Now()

		mockPool.ExpectQuery(regexp.QuoteMeta(findCreditsByCustomerQuery)).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(creditColumns).
				AddRow(int64(1), uuid.NewString(), "100.00", now, 2, "CURRENT", now).
				AddRow(int64(2), uuid.NewString(), "250.50", now, 5, "PAID", now))

		credits, err := repo.FindAllByCustomerID(ctx, 1)

		require.NoError(t, err)
		require.Len(t, credits, 2)
		assert.Equal(t, credit.StatusPaid, credits[1].Status)
		assert.Equal(t, int64(1), credits[0].CustomerID())
		assert.True(t, credits[1].CreditValue.Equal(decimal.RequireFromString("250.5")))
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		ctx, repo, mockPool := setupCreditRepo(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(regexp.QuoteMeta(findCreditsByCustomerQuery)).WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(creditColumns))

		credits, err := repo.FindAllByCustomerID(ctx, 99)

		require.NoError(t, err)
		assert.NotNil(t, credits)
		assert.Empty(t, credits)
	})

	t.Run("query failure", func(t *testing.T) {
		ctx, repo, mockPool := setupCreditRepo(t)
		defer mockPool.Close()

		mockPool.ExpectQuery(regexp.QuoteMeta(findCreditsByCustomerQuery)).WithArgs(int64(1)).
			WillReturnError(errors.New("boom"))

		_, err := repo.FindAllByCustomerID(ctx, 1)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}

func TestSummarizeByStatus(t *testing.T) {
	ctx, repo, mockPool := setupCreditRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(summarizeCreditsQuery)).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count", "sum"}).
			AddRow("CURRENT", int64(4), "4000.00").
			AddRow("PAID", int64(1), "150.00"))

	summaries, err := repo.SummarizeByStatus(ctx)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, credit.StatusCurrent, summaries[0].Status)
	assert.Equal(t, int64(4), summaries[0].Credits)
	assert.True(t, summaries[0].TotalValue.Equal(decimal.RequireFromString("4000")))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
