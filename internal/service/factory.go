package service

import (
	"time"

	"github.com/rentdesk/rentdesk/internal/cache"
	"github.com/rentdesk/rentdesk/internal/clock"
	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/idempotency"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
	webhookPublisher "github.com/rentdesk/rentdesk/internal/webhook/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	Clock  clock.Clock

	// Repositories
	ContractRepo    contract.Repository
	InstallmentRepo installment.Repository

	// Publishers
	WebhookPublisher webhookPublisher.WebhookPublisher

	IdempotencyGenerator *idempotency.Generator
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	clock clock.Clock,
	contractRepo contract.Repository,
	installmentRepo installment.Repository,
	webhookPublisher webhookPublisher.WebhookPublisher,
	idempotencyGenerator *idempotency.Generator,
) ServiceParams {
	return ServiceParams{
		Logger:               logger,
		Config:               config,
		DB:                   db,
		Cache:                cache,
		Clock:                clock,
		ContractRepo:         contractRepo,
		InstallmentRepo:      installmentRepo,
		WebhookPublisher:     webhookPublisher,
		IdempotencyGenerator: idempotencyGenerator,
	}
}

// now is the current instant in the schedule timezone, so calendar-day
// comparisons use the business day rather than the server's
func (p ServiceParams) now() time.Time {
	return p.Clock.Now().In(p.Config.Schedule.Location())
}
