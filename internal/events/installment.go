package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rentdesk/rentdesk/internal/domain/installment"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/shopspring/decimal"
)

// InstallmentPayload is the body of every installment.* event
type InstallmentPayload struct {
	ID               string                   `json:"id"`
	ContractID       string                   `json:"contractId"`
	TotalReceive     decimal.Decimal          `json:"totalReceive"`
	TotalSend        decimal.Decimal          `json:"totalSend"`
	DatePaymentExpec string                   `json:"datePaymentExpec"`
	Status           types.InstallmentStatus  `json:"status"`
	Type             types.InstallmentType    `json:"type"`
	PreviousStatus   *types.InstallmentStatus `json:"previousStatus,omitempty"`
	Corrected        bool                     `json:"corrected,omitempty"`
}

// InstallmentChange describes what happened to an installment
type InstallmentChange struct {
	EventName      string
	Installment    *installment.Installment
	PreviousStatus *types.InstallmentStatus
	Corrected      bool
}

// NewInstallmentEvent wraps a change into a webhook event stamped with the
// tenant and user from ctx.
func NewInstallmentEvent(ctx context.Context, change InstallmentChange, at time.Time) (*types.WebhookEvent, error) {
	if change.Installment == nil {
		return nil, ierr.NewError("installment is required").
			WithHint("Installment event has no installment").
			Mark(ierr.ErrValidation)
	}

	inst := change.Installment
	payload, err := json.Marshal(InstallmentPayload{
		ID:               inst.ID,
		ContractID:       inst.ContractID,
		TotalReceive:     inst.Amount,
		TotalSend:        inst.AmountReceived,
		DatePaymentExpec: types.FormatDate(inst.DueDate),
		Status:           inst.InstallmentStatus,
		Type:             inst.InstallmentType,
		PreviousStatus:   change.PreviousStatus,
		Corrected:        change.Corrected,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode installment event").
			Mark(ierr.ErrSystem)
	}

	return &types.WebhookEvent{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK_EVENT),
		EventName: change.EventName,
		TenantID:  types.GetTenantID(ctx),
		UserID:    types.GetUserID(ctx),
		Timestamp: at.UTC(),
		Payload:   payload,
	}, nil
}

// StatusEventName picks the most specific event for a status change
func StatusEventName(previous, current types.InstallmentStatus) string {
	if previous == current {
		return types.WebhookEventInstallmentUpdated
	}
	switch current {
	case types.InstallmentStatusPaid:
		return types.WebhookEventInstallmentPaid
	case types.InstallmentStatusOverdue:
		return types.WebhookEventInstallmentOverdue
	default:
		return types.WebhookEventInstallmentUpdated
	}
}
