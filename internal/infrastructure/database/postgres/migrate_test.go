package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsAreOrdered(t *testing.T) {
	migrations, err := loadMigrations(migrationFS)

	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "0001_create_customers", migrations[0].version)
	assert.Equal(t, "0002_create_credits", migrations[1].version)
	assert.Contains(t, migrations[1].sql, "ON DELETE CASCADE")
}

func TestMigrateAppliesPendingMigrations(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()

	mockPool.ExpectExec(regexp.QuoteMeta(createMigrationsTableQuery)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectQuery(regexp.QuoteMeta(appliedVersionsQuery)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow("0001_create_customers"))
	mockPool.ExpectBegin()
	mockPool.ExpectExec("CREATE TABLE IF NOT EXISTS credits").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta(recordVersionQuery)).WithArgs("0002_create_credits").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	applied, err := Migrate(ctx, mockPool, logger)

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestMigrateRollsBackFailedMigration(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	ctx := context.Background()

	mockPool.ExpectExec(regexp.QuoteMeta(createMigrationsTableQuery)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectQuery(regexp.QuoteMeta(appliedVersionsQuery)).WillReturnRows(pgxmock.NewRows([]string{"version"}))
	mockPool.ExpectBegin()
	mockPool.ExpectExec("CREATE TABLE IF NOT EXISTS customers").WillReturnError(errors.New("syntax error"))
	mockPool.ExpectRollback()

	applied, err := Migrate(ctx, mockPool, logger)

	assert.Equal(t, 0, applied)
	assert.ErrorContains(t, err, "failed to execute migration 0001_create_customers")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
