package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/infrastructure/monitoring"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSnapshotSchedule = "*/15 * * * *"
	DefaultSnapshotTimeout  = 2 * time.Minute
)

// PortfolioSnapshotJob exports credit counts and totals per status as gauges.
type PortfolioSnapshotJob struct {
	repo   credit.PortfolioRepository
	logger *slog.Logger
}

func NewPortfolioSnapshotJob(repo credit.PortfolioRepository, logger *slog.Logger) *PortfolioSnapshotJob {
	if repo == nil || logger == nil {
		panic("PortfolioSnapshotJob dependencies cannot be nil")
	}
	return &PortfolioSnapshotJob{
		repo:   repo,
		logger: logger.With("job", "PortfolioSnapshot"),
	}
}

func (j *PortfolioSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting portfolio snapshot job.")

	summaries, err := j.repo.SummarizeByStatus(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to summarize credits, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to summarize credits: %w", err)
	}

	seen := make(map[credit.Status]bool, len(summaries))
	var totalCredits int64
	for _, s := range summaries {
		value, _ := s.TotalValue.Float64()
		monitoring.RecordPortfolio(string(s.Status), s.Credits, value)
		seen[s.Status] = true
		totalCredits += s.Credits
	}
	// statuses with no rows must read zero rather than keep a stale value
	for _, status := range []credit.Status{credit.StatusCurrent, credit.StatusInProgress, credit.StatusPaid} {
		if !seen[status] {
			monitoring.RecordPortfolio(string(status), 0, 0)
		}
	}

	j.logger.InfoContext(ctx, "Portfolio snapshot job finished successfully.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("statuses", len(summaries)),
		slog.Int64("total_credits", totalCredits),
	)
	return nil
}

// Register schedules the job on c; every run gets its own timeout-bound context.
func (j *PortfolioSnapshotJob) Register(c *cron.Cron, scheduleSpec string, timeout time.Duration) (cron.EntryID, error) {
	if scheduleSpec == "" {
		scheduleSpec = DefaultSnapshotSchedule
		j.logger.Warn("Portfolio snapshot schedule not configured, using default", "schedule", scheduleSpec)
	}
	if timeout <= 0 {
		timeout = DefaultSnapshotTimeout
	}

	return c.AddJob(scheduleSpec, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if runErr := j.Run(ctx); runErr != nil {
			j.logger.Error("Portfolio snapshot job finished with error", slog.Any("error", runErr))
		}
	}))
}
