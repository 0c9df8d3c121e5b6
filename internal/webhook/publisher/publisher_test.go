package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/pubsub/memory"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWebhook(t *testing.T) {
	log := logger.NewNopLogger()
	ps := memory.NewPubSub(log)
	defer ps.Close()

	cfg := config.GetDefaultConfig()
	cfg.Webhook.Enabled = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := ps.Subscribe(ctx, cfg.Webhook.Topic)
	require.NoError(t, err)

	pub := NewPublisher(ps, cfg, log)
	event := &types.WebhookEvent{
		ID:        "webhook_1",
		EventName: types.WebhookEventInstallmentCreated,
		TenantID:  "tenant_1",
		Payload:   json.RawMessage(`{"id":"inst_1"}`),
	}
	require.NoError(t, pub.PublishWebhook(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, "webhook_1", msg.UUID)
		assert.Equal(t, "tenant_1", msg.Metadata.Get("tenant_id"))

		var got types.WebhookEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, types.WebhookEventInstallmentCreated, got.EventName)
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestPublishWebhookDisabled(t *testing.T) {
	log := logger.NewNopLogger()
	ps := memory.NewPubSub(log)
	defer ps.Close()

	cfg := config.GetDefaultConfig()
	cfg.Webhook.Enabled = false

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	messages, err := ps.Subscribe(ctx, cfg.Webhook.Topic)
	require.NoError(t, err)

	require.NoError(t, NewPublisher(ps, cfg, log).PublishWebhook(ctx, &types.WebhookEvent{ID: "webhook_2"}))

	select {
	case msg, ok := <-messages:
		if ok {
			t.Fatalf("unexpected message %s", msg.UUID)
		}
	case <-ctx.Done():
	}
}
