package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstallmentEvent(t *testing.T) {
	ctx := types.SetTenantID(context.Background(), "tenant_1")
	ctx = types.SetUserID(ctx, "user_1")
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	inst := &installment.Installment{
		ID:                "inst_1",
		ContractID:        "ctr_1",
		Amount:            decimal.NewFromInt(5000000),
		AmountReceived:    decimal.NewFromInt(5000000),
		DueDate:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		InstallmentStatus: types.InstallmentStatusPaid,
		InstallmentType:   types.InstallmentTypeRent,
	}

	event, err := NewInstallmentEvent(ctx, InstallmentChange{
		EventName:      types.WebhookEventInstallmentPaid,
		Installment:    inst,
		PreviousStatus: lo.ToPtr(types.InstallmentStatusUnpaid),
	}, at)
	require.NoError(t, err)

	assert.Equal(t, types.WebhookEventInstallmentPaid, event.EventName)
	assert.Equal(t, "tenant_1", event.TenantID)
	assert.Equal(t, "user_1", event.UserID)
	assert.Equal(t, at, event.Timestamp)
	assert.NotEmpty(t, event.ID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(event.Payload, &body))
	assert.Equal(t, "inst_1", body["id"])
	assert.Equal(t, "ctr_1", body["contractId"])
	assert.Equal(t, "2024-03-01", body["datePaymentExpec"])
	assert.EqualValues(t, 1, body["status"])
	assert.EqualValues(t, 0, body["previousStatus"])
	assert.NotContains(t, body, "corrected")
}

func TestNewInstallmentEventRequiresInstallment(t *testing.T) {
	_, err := NewInstallmentEvent(context.Background(), InstallmentChange{}, time.Now())
	assert.Error(t, err)
}

func TestStatusEventName(t *testing.T) {
	tests := []struct {
		previous types.InstallmentStatus
		current  types.InstallmentStatus
		want     string
	}{
		{types.InstallmentStatusUnpaid, types.InstallmentStatusUnpaid, types.WebhookEventInstallmentUpdated},
		{types.InstallmentStatusUnpaid, types.InstallmentStatusPaid, types.WebhookEventInstallmentPaid},
		{types.InstallmentStatusUnpaid, types.InstallmentStatusOverdue, types.WebhookEventInstallmentOverdue},
		{types.InstallmentStatusPaid, types.InstallmentStatusUnpaid, types.WebhookEventInstallmentUpdated},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusEventName(tt.previous, tt.current))
	}
}
