package payload

import (
	"encoding/json"
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

// Envelope is the body POSTed to tenant endpoints
type Envelope struct {
	EventType string          `json:"event_type"`
	EventID   string          `json:"event_id"`
	Timestamp time.Time       `json:"timestamp"`
	TenantID  string          `json:"tenant_id"`
	Data      json.RawMessage `json:"data"`
}

// Builder turns a webhook event into the bytes sent over the wire
type Builder interface {
	Build(event *types.WebhookEvent) (json.RawMessage, error)
}

type builder struct {
	supported []string
}

// NewBuilder returns a builder accepting the installment.* events
func NewBuilder() Builder {
	return &builder{
		supported: []string{
			types.WebhookEventInstallmentCreated,
			types.WebhookEventInstallmentUpdated,
			types.WebhookEventInstallmentPaid,
			types.WebhookEventInstallmentOverdue,
			types.WebhookEventInstallmentDeleted,
		},
	}
}

func (b *builder) Build(event *types.WebhookEvent) (json.RawMessage, error) {
	if !lo.Contains(b.supported, event.EventName) {
		return nil, ierr.NewErrorf("no payload builder for event %s", event.EventName).
			WithHint("Unsupported webhook event").
			WithReportableDetails(map[string]any{
				"event_name": event.EventName,
			}).
			Mark(ierr.ErrValidation)
	}

	data := event.Payload
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	body, err := json.Marshal(Envelope{
		EventType: event.EventName,
		EventID:   event.ID,
		Timestamp: event.Timestamp,
		TenantID:  event.TenantID,
		Data:      data,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode webhook payload").
			Mark(ierr.ErrSystem)
	}
	return body, nil
}
