package postgres

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"go.uber.org/fx"
)

// IClient is what services need from the database: running work atomically
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

// Module provides the sqlx DB and the transaction client for fx
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
		fx.Invoke(registerHooks),
	)
}

// NewClient wraps db with sentry spans around transactions
func NewClient(db *DB, sentrySvc *sentry.Service, logger *logger.Logger) IClient {
	return NewSentryClient(db, sentrySvc, logger)
}

func registerHooks(lc fx.Lifecycle, db *DB, cfg *config.Configuration, logger *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			logger.Infow("connected to postgres",
				"host", cfg.Postgres.Host,
				"dbname", cfg.Postgres.DBName,
				"max_open_conns", cfg.Postgres.MaxOpenConns,
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
}
