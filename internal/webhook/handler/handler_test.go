package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/httpclient"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/pubsub/memory"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/rentdesk/rentdesk/internal/webhook/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingClient struct {
	requests []*httpclient.Request
	err      error
}

func (c *recordingClient) Send(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return &httpclient.Response{StatusCode: http.StatusOK}, nil
}

type HandlerSuite struct {
	suite.Suite
	cfg    *config.Configuration
	client *recordingClient
	h      *handler
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	log := logger.NewNopLogger()
	s.cfg = config.GetDefaultConfig()
	s.cfg.Webhook.Enabled = true
	s.cfg.Webhook.Tenants = map[string]config.TenantWebhookConfig{
		"tenant_1": {
			Endpoint:       "http://example.test/hooks",
			Headers:        map[string]string{"Authorization": "Bearer t"},
			Enabled:        true,
			ExcludedEvents: []string{types.WebhookEventInstallmentDeleted},
		},
		"tenant_off": {Endpoint: "http://example.test/off"},
	}
	s.client = &recordingClient{}
	s.h = NewHandler(
		memory.NewPubSub(log),
		s.cfg,
		payload.NewBuilder(),
		s.client,
		log,
		sentry.NewSentryService(s.cfg, log),
	).(*handler)
}

func (s *HandlerSuite) message(tenantID, eventName string) *message.Message {
	body, err := json.Marshal(types.WebhookEvent{
		ID:        "webhook_1",
		EventName: eventName,
		TenantID:  tenantID,
		Payload:   json.RawMessage(`{"id":"inst_1"}`),
	})
	s.Require().NoError(err)
	return message.NewMessage("webhook_1", body)
}

func (s *HandlerSuite) TestDelivers() {
	err := s.h.processMessage(s.message("tenant_1", types.WebhookEventInstallmentPaid))
	s.NoError(err)
	s.Require().Len(s.client.requests, 1)

	req := s.client.requests[0]
	s.Equal("POST", req.Method)
	s.Equal("http://example.test/hooks", req.URL)
	s.Equal("Bearer t", req.Headers["Authorization"])

	var envelope payload.Envelope
	s.Require().NoError(json.Unmarshal(req.Body, &envelope))
	s.Equal(types.WebhookEventInstallmentPaid, envelope.EventType)
}

func (s *HandlerSuite) TestSkips() {
	s.NoError(s.h.processMessage(s.message("unknown", types.WebhookEventInstallmentPaid)))
	s.NoError(s.h.processMessage(s.message("tenant_off", types.WebhookEventInstallmentPaid)))
	s.NoError(s.h.processMessage(s.message("tenant_1", types.WebhookEventInstallmentDeleted)))
	s.NoError(s.h.processMessage(message.NewMessage("bad", []byte("not json"))))
	s.Empty(s.client.requests)
}

func (s *HandlerSuite) TestRetryableFailure() {
	s.client.err = httpclient.NewError(http.StatusServiceUnavailable, nil)
	s.Error(s.h.processMessage(s.message("tenant_1", types.WebhookEventInstallmentPaid)))
}

func (s *HandlerSuite) TestPermanentFailureIsAcked() {
	s.client.err = httpclient.NewError(http.StatusBadRequest, []byte("nope"))
	s.NoError(s.h.processMessage(s.message("tenant_1", types.WebhookEventInstallmentPaid)))
	s.Len(s.client.requests, 1)
}

func TestProcessDeadLetter(t *testing.T) {
	log := logger.NewNopLogger()
	cfg := config.GetDefaultConfig()
	h := NewHandler(memory.NewPubSub(log), cfg, payload.NewBuilder(), &recordingClient{}, log, sentry.NewSentryService(cfg, log)).(*handler)

	msg := message.NewMessage("m1", []byte("{}"))
	msg.Metadata.Set("tenant_id", "tenant_1")
	require.NoError(t, h.processDeadLetter(msg))
	assert.Equal(t, "tenant_1", msg.Metadata.Get("tenant_id"))
}
