package postgres

import (
	"context"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/migrations"
	"github.com/samber/lo"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(100) PRIMARY KEY,
		applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`

// Migrator applies embedded migrations, each in its own transaction
type Migrator struct {
	db     *DB
	logger *logger.Logger
}

func NewMigrator(db *DB, logger *logger.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Pending returns the migrations of all that have not been applied yet
func (m *Migrator) Pending(ctx context.Context, all []migrations.Migration) ([]migrations.Migration, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to prepare the migrations table").
			Mark(ierr.ErrDatabase)
	}

	var applied []string
	if err := m.db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read applied migrations").
			Mark(ierr.ErrDatabase)
	}

	return PendingMigrations(all, applied), nil
}

// Up applies every pending migration in order and returns the versions applied
func (m *Migrator) Up(ctx context.Context, all []migrations.Migration) ([]string, error) {
	pending, err := m.Pending(ctx, all)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range pending {
		m.logger.Infow("applying migration", "version", mig.Version)

		err := m.db.WithTx(ctx, func(txCtx context.Context) error {
			q := m.db.GetQuerier(txCtx)
			if _, err := q.ExecContext(txCtx, mig.SQL); err != nil {
				return err
			}
			_, err := q.ExecContext(txCtx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version)
			return err
		})
		if err != nil {
			return done, ierr.WithError(err).
				WithHintf("Migration %s failed", mig.Version).
				WithReportableDetails(map[string]any{"version": mig.Version}).
				Mark(ierr.ErrDatabase)
		}
		done = append(done, mig.Version)
	}
	return done, nil
}

// PendingMigrations keeps the migrations whose version is not in applied
func PendingMigrations(all []migrations.Migration, applied []string) []migrations.Migration {
	return lo.Filter(all, func(m migrations.Migration, _ int) bool {
		return !lo.Contains(applied, m.Version)
	})
}
