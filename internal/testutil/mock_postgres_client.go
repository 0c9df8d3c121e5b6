package testutil

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional work directly, without a database
type MockPostgresClient struct {
	logger *logger.Logger
	// Commits counts WithTx calls whose function returned nil
	Commits int
	// Rollbacks counts WithTx calls whose function failed
	Rollbacks int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.Rollbacks++
		return err
	}
	c.Commits++
	return nil
}
