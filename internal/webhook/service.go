package webhook

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/config"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/logger"
	pubsubRouter "github.com/rentdesk/rentdesk/internal/pubsub/router"
	"github.com/rentdesk/rentdesk/internal/webhook/handler"
	"github.com/rentdesk/rentdesk/internal/webhook/publisher"
)

// WebhookService orchestrates webhook operations
type WebhookService struct {
	config    *config.Configuration
	publisher publisher.WebhookPublisher
	handler   handler.Handler
	router    *pubsubRouter.Router
	logger    *logger.Logger
}

func NewWebhookService(
	cfg *config.Configuration,
	publisher publisher.WebhookPublisher,
	h handler.Handler,
	router *pubsubRouter.Router,
	l *logger.Logger,
) *WebhookService {
	return &WebhookService{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		router:    router,
		logger:    l,
	}
}

// Start registers the delivery handlers and runs the router in the
// background. It returns once the router is subscribed.
func (s *WebhookService) Start(ctx context.Context) error {
	if !s.config.Webhook.Enabled {
		s.logger.Info("webhook service disabled")
		return nil
	}

	s.handler.RegisterHandler(s.router)

	errCh := make(chan error, 1)
	go func() {
		if err := s.router.Run(context.Background()); err != nil {
			s.logger.Errorw("webhook router stopped", "error", err)
			errCh <- err
		}
	}()

	select {
	case <-s.router.Running():
		s.logger.Info("webhook service started successfully")
		return nil
	case err := <-errCh:
		return ierr.WithError(err).
			WithHint("Failed to start webhook router").
			Mark(ierr.ErrSystem)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the router first so in-flight deliveries finish, then the publisher
func (s *WebhookService) Stop() error {
	s.logger.Debug("stopping webhook service")

	if s.config.Webhook.Enabled {
		if err := s.router.Close(); err != nil {
			s.logger.Errorw("failed to close webhook router", "error", err)
			return err
		}
	}

	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close webhook publisher", "error", err)
		return err
	}

	s.logger.Info("webhook service stopped successfully")
	return nil
}
