package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-application-system/internal/infrastructure/monitoring"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

// SQLSTATE codes the repositories care about.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateStringTooLong       = "22001"
	sqlStateNumericOutOfRange   = "22003"
)

// DBPool is the subset of pgxpool.Pool used by the repositories, so that
// pgxmock can stand in for it in tests.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var (
	_ DBPool = (*pgxpool.Pool)(nil)
	_ DBPool = (pgxmock.PgxPoolIface)(nil)
)

// translateDBError maps driver failures onto the apperrors sentinels the
// service and handler layers know how to report.
func translateDBError(err error, log *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error("Query failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
	}

	switch pgErr.Code {
	case sqlStateUniqueViolation:
		log.Warn("Unique constraint rejected write", slog.String("constraint", pgErr.ConstraintName), slog.String("detail", pgErr.Detail))
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
	case sqlStateForeignKeyViolation:
		log.Warn("Referenced row is missing", slog.String("constraint", pgErr.ConstraintName))
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
	case sqlStateCheckViolation:
		log.Warn("Check constraint rejected write", slog.String("constraint", pgErr.ConstraintName))
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.ConstraintName)
	case sqlStateStringTooLong, sqlStateNumericOutOfRange:
		log.Warn("Value does not fit its column", slog.String("sqlstate", pgErr.Code), slog.String("column", pgErr.ColumnName))
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidArgument, pgErr.Message)
	default:
		log.Error("Postgres rejected statement", slog.String("sqlstate", pgErr.Code), slog.String("message", pgErr.Message))
		return fmt.Errorf("%w: sqlstate %s", apperrors.ErrDatabase, pgErr.Code)
	}
}

// inTx runs fn inside a transaction, committing on success and rolling back
// when fn or the commit fails.
func inTx(ctx context.Context, db DBPool, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// observe records the query latency; a not-found result still counts as success.
func observe(queryName string, start time.Time, err error) {
	outcome := "success"
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		outcome = "error"
	}
	monitoring.RecordDBQuery(queryName, outcome, time.Since(start))
}
