package payload

import (
	"encoding/json"
	"testing"
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	event := &types.WebhookEvent{
		ID:        "webhook_1",
		EventName: types.WebhookEventInstallmentOverdue,
		TenantID:  "tenant_1",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:   json.RawMessage(`{"id":"inst_1"}`),
	}

	body, err := NewBuilder().Build(event)
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "installment.overdue", envelope.EventType)
	assert.Equal(t, "webhook_1", envelope.EventID)
	assert.Equal(t, "tenant_1", envelope.TenantID)
	assert.JSONEq(t, `{"id":"inst_1"}`, string(envelope.Data))
}

func TestBuildEmptyPayload(t *testing.T) {
	body, err := NewBuilder().Build(&types.WebhookEvent{EventName: types.WebhookEventInstallmentDeleted})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"data":{}`)
}

func TestBuildUnsupportedEvent(t *testing.T) {
	_, err := NewBuilder().Build(&types.WebhookEvent{EventName: "invoice.created"})
	assert.True(t, ierr.IsValidation(err))
}
