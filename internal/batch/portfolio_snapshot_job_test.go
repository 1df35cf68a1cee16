package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"credit-application-system/internal/batch"
	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/infrastructure/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) SummarizeByStatus(ctx context.Context) ([]credit.StatusSummary, error) {
	args := m.Called(ctx)
	if summaries, ok := args.Get(0).([]credit.StatusSummary); ok {
		return summaries, args.Error(1)
	}
	return nil, args.Error(1)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPortfolioSnapshotJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("exports gauges per status", func(t *testing.T) {
		repo := new(MockPortfolioRepository)
		repo.On("SummarizeByStatus", ctx).Return([]credit.StatusSummary{
			{Status: credit.StatusCurrent, Credits: 3, TotalValue: decimal.RequireFromString("3000.50")},
			{Status: credit.StatusPaid, Credits: 1, TotalValue: decimal.RequireFromString("200")},
		}, nil).Once()
		monitoring.RecordPortfolio(string(credit.StatusInProgress), 9, 9)

		err := batch.NewPortfolioSnapshotJob(repo, testLogger).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, float64(3), testutil.ToFloat64(monitoring.Business.PortfolioCredits.WithLabelValues("CURRENT")))
		assert.Equal(t, 3000.5, testutil.ToFloat64(monitoring.Business.PortfolioValue.WithLabelValues("CURRENT")))
		assert.Equal(t, float64(1), testutil.ToFloat64(monitoring.Business.PortfolioCredits.WithLabelValues("PAID")))
		assert.Equal(t, float64(0), testutil.ToFloat64(monitoring.Business.PortfolioCredits.WithLabelValues("IN_PROGRESS")))
		repo.AssertExpectations(t)
	})

	t.Run("repository failure aborts", func(t *testing.T) {
		repo := new(MockPortfolioRepository)
		repo.On("SummarizeByStatus", ctx).Return(nil, errors.New("db down")).Once()

		err := batch.NewPortfolioSnapshotJob(repo, testLogger).Run(ctx)

		assert.ErrorContains(t, err, "failed to summarize credits")
	})
}

func TestPortfolioSnapshotJob_Register(t *testing.T) {
	job := batch.NewPortfolioSnapshotJob(new(MockPortfolioRepository), testLogger)

	t.Run("default schedule", func(t *testing.T) {
		c := cron.New()
		id, err := job.Register(c, "", 0)

		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Len(t, c.Entries(), 1)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := job.Register(cron.New(), "not a cron spec", 0)
		assert.Error(t, err)
	})
}

func TestNewPortfolioSnapshotJob_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { batch.NewPortfolioSnapshotJob(nil, testLogger) })
}
