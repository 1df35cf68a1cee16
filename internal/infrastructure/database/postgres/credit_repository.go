package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	insertCreditQuery = `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id, created_at`

	findCreditByCodeQuery = `
        SELECT cr.id, cr.credit_code, cr.credit_value, cr.day_first_installment, cr.number_of_installments, cr.status, cr.created_at,
               c.id, c.email, c.income
        FROM credits cr
        JOIN customers c ON c.id = cr.customer_id
        WHERE cr.credit_code = $1`

	findCreditsByCustomerQuery = `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, created_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id ASC`

	summarizeCreditsQuery = `
        SELECT status, COUNT(*), COALESCE(SUM(credit_value), 0)
        FROM credits
        GROUP BY status
        ORDER BY status`
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var (
	_ credit.Repository          = (*CreditRepository)(nil)
	_ credit.PortfolioRepository = (*CreditRepository)(nil)
)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditRepository, using default stderr handler")
	}
	return &CreditRepository{
		db:     db,
		logger: logger.With("component", "CreditRepository"),
	}
}

func (r *CreditRepository) Save(ctx context.Context, c *credit.Credit) error {
	if c == nil || c.CustomerID() == 0 {
		return fmt.Errorf("%w: credit must reference a customer", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("creditCode", c.CreditCode.String()))
	start := time.Now()

	err := r.db.QueryRow(ctx, insertCreditQuery,
		c.CreditCode,
		c.CreditValue,
		c.DayFirstInstallment,
		c.NumberOfInstallments,
		string(c.Status),
		c.CustomerID(),
	).Scan(&c.ID, &c.CreatedAt)
	observe("InsertCredit", start, err)

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}

	logCtx.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", c.ID))
	return nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, code uuid.UUID) (*credit.Credit, error) {
	start := time.Now()

	var (
		c      credit.Credit
		owner  customer.Customer
		status string
	)
	err := r.db.QueryRow(ctx, findCreditByCodeQuery, code).Scan(
		&c.ID,
		&c.CreditCode,
		&c.CreditValue,
		&c.DayFirstInstallment,
		&c.NumberOfInstallments,
		&status,
		&c.CreatedAt,
		&owner.ID,
		&owner.Email,
		&owner.Income,
	)
	observe("FindCreditByCode", start, err)

	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrNotFound) {
			r.logger.WarnContext(ctx, "Credit not found", slog.String("creditCode", code.String()))
		} else {
			r.logger.ErrorContext(ctx, "Failed to query/scan credit by code", slog.Any("error", err))
		}
		return nil, translated
	}

	c.Status = credit.Status(status)
	c.Customer = &owner
	return &c, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	start := time.Now()

	rows, err := r.db.Query(ctx, findCreditsByCustomerQuery, customerID)
	if err != nil {
		observe("FindCreditsByCustomer", start, err)
		logCtx.ErrorContext(ctx, "Failed to query credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	owner := &customer.Customer{ID: customerID}
	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		var (
			c      credit.Credit
			status string
		)
		if err := rows.Scan(
			&c.ID,
			&c.CreditCode,
			&c.CreditValue,
			&c.DayFirstInstallment,
			&c.NumberOfInstallments,
			&status,
			&c.CreatedAt,
		); err != nil {
			observe("FindCreditsByCustomer", start, err)
			logCtx.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		c.Status = credit.Status(status)
		c.Customer = owner
		credits = append(credits, &c)
	}

	err = rows.Err()
	observe("FindCreditsByCustomer", start, err)
	if err != nil {
		logCtx.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating credit rows: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Finished finding credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (r *CreditRepository) SummarizeByStatus(ctx context.Context) ([]credit.StatusSummary, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, summarizeCreditsQuery)
	if err != nil {
		observe("SummarizeCredits", start, err)
		r.logger.ErrorContext(ctx, "Failed to summarize credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to summarize credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	summaries := make([]credit.StatusSummary, 0, 3)
	for rows.Next() {
		var (
			s      credit.StatusSummary
			status string
		)
		if err := rows.Scan(&status, &s.Credits, &s.TotalValue); err != nil {
			observe("SummarizeCredits", start, err)
			return nil, fmt.Errorf("%w: failed to scan summary row: %w", apperrors.ErrDatabase, err)
		}
		s.Status = credit.Status(status)
		summaries = append(summaries, s)
	}

	err = rows.Err()
	observe("SummarizeCredits", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: error iterating summary rows: %w", apperrors.ErrDatabase, err)
	}
	return summaries, nil
}
