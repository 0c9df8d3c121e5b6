package handler

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/httpclient"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/pubsub"
	pubsubRouter "github.com/rentdesk/rentdesk/internal/pubsub/router"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/rentdesk/rentdesk/internal/webhook/payload"
	"github.com/samber/lo"
)

// Handler interface for processing webhook events
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
}

type handler struct {
	pubSub  pubsub.PubSub
	config  *config.Webhook
	builder payload.Builder
	client  httpclient.Client
	logger  *logger.Logger
	sentry  *sentry.Service
}

// NewHandler delivers events from the webhook topic to tenant endpoints
func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	builder payload.Builder,
	client httpclient.Client,
	logger *logger.Logger,
	sentry *sentry.Service,
) Handler {
	return &handler{
		pubSub:  pubSub,
		config:  &cfg.Webhook,
		builder: builder,
		client:  client,
		logger:  logger,
		sentry:  sentry,
	}
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"webhook_handler",
		h.config.Topic,
		h.pubSub,
		h.processMessage,
	)
	router.AddNoPublishHandler(
		"webhook_dlq_handler",
		pubsubRouter.DeadLetterTopic(h.config.Topic),
		h.pubSub,
		h.processDeadLetter,
	)
}

// processMessage delivers a single webhook message. A returned error makes
// the router retry, so permanent failures are logged and acked instead.
func (h *handler) processMessage(msg *message.Message) error {
	var event types.WebhookEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal webhook event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil
	}

	ctx := types.SetTenantID(msg.Context(), event.TenantID)
	ctx = types.SetUserID(ctx, event.UserID)

	err := h.deliver(ctx, &event, msg.UUID)
	if err == nil {
		return nil
	}

	if !pubsubRouter.ShouldRetry(h.logger, err) {
		h.logger.Warnw("dropping webhook after non-retryable error",
			"error", err,
			"message_uuid", msg.UUID,
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		h.sentry.CaptureException(ctx, err)
		return nil
	}
	return err
}

func (h *handler) deliver(ctx context.Context, event *types.WebhookEvent, messageUUID string) error {
	tenantCfg, ok := h.config.Tenants[event.TenantID]
	if !ok {
		h.logger.Debugw("tenant webhook config not found",
			"tenant_id", event.TenantID,
			"message_uuid", messageUUID,
		)
		return nil
	}

	if !tenantCfg.Enabled {
		h.logger.Debugw("webhooks disabled for tenant",
			"tenant_id", event.TenantID,
			"message_uuid", messageUUID,
		)
		return nil
	}

	if lo.Contains(tenantCfg.ExcludedEvents, event.EventName) {
		h.logger.Debugw("event excluded for tenant",
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		return nil
	}

	body, err := h.builder.Build(event)
	if err != nil {
		return err
	}

	resp, err := h.client.Send(ctx, &httpclient.Request{
		Method:  "POST",
		URL:     tenantCfg.Endpoint,
		Headers: tenantCfg.Headers,
		Body:    body,
	})
	if err != nil {
		h.logger.Errorw("failed to send webhook",
			"error", err,
			"message_uuid", messageUUID,
			"tenant_id", event.TenantID,
			"event", event.EventName,
		)
		return err
	}

	h.logger.Infow("webhook sent successfully",
		"message_uuid", messageUUID,
		"tenant_id", event.TenantID,
		"event", event.EventName,
		"status_code", resp.StatusCode,
	)
	return nil
}

// processDeadLetter records messages whose retries were exhausted
func (h *handler) processDeadLetter(msg *message.Message) error {
	h.logger.Errorw("webhook moved to dead letter queue",
		"message_uuid", msg.UUID,
		"tenant_id", msg.Metadata.Get("tenant_id"),
		"event", msg.Metadata.Get("event_name"),
		"reason", msg.Metadata.Get("reason_poisoned"),
	)
	h.sentry.AddBreadcrumb("webhook", "dead letter", map[string]interface{}{
		"message_uuid": msg.UUID,
		"tenant_id":    msg.Metadata.Get("tenant_id"),
	})
	return nil
}
