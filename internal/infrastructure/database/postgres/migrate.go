package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	createMigrationsTableQuery = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())`
	appliedVersionsQuery       = `SELECT version FROM schema_migrations`
	recordVersionQuery         = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

type migration struct {
	version string
	sql     string
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")
		migrations = append(migrations, migration{version: version, sql: string(body)})
	}
	return migrations, nil
}

// Migrate applies every embedded migration not yet recorded in schema_migrations,
// each inside its own transaction, and returns how many were applied.
func Migrate(ctx context.Context, db DBPool, logger *slog.Logger) (int, error) {
	logCtx := logger.With("component", "Migrator")

	migrations, err := loadMigrations(migrationFS)
	if err != nil {
		return 0, err
	}

	if _, err := db.Exec(ctx, createMigrationsTableQuery); err != nil {
		return 0, translateDBError(err, logCtx)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, translateDBError(err, logCtx)
	}

	count := 0
	for _, m := range migrations {
		if applied[m.version] {
			logCtx.DebugContext(ctx, "Migration already applied", slog.String("version", m.version))
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			logCtx.ErrorContext(ctx, "Migration failed", slog.String("version", m.version), slog.Any("error", err))
			return count, err
		}
		logCtx.InfoContext(ctx, "Migration applied", slog.String("version", m.version))
		count++
	}

	return count, nil
}

func appliedVersions(ctx context.Context, db DBPool) (map[string]bool, error) {
	rows, err := db.Query(ctx, appliedVersionsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db DBPool, m migration) error {
	return inTx(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx, recordVersionQuery, m.version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}
		return nil
	})
}
