package postgres

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/sentry"
)

// SentryClient wraps an IClient with sentry span tracking
type SentryClient struct {
	client IClient
	sentry *sentry.Service
	logger *logger.Logger
}

func NewSentryClient(client IClient, sentrySvc *sentry.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		client: client,
		sentry: sentrySvc,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with a sentry span
func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
	})
	if span != nil {
		defer span.Finish()
	}

	return c.client.WithTx(spanCtx, fn)
}
