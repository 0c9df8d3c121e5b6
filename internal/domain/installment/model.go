package installment

import (
	"time"

	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Installment is one scheduled payment obligation of a contract
type Installment struct {
	ID         string `db:"id" json:"id"`
	ContractID string `db:"contract_id" json:"contract_id"`
	// Amount expected for this installment
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// AmountReceived is what has been collected so far
	AmountReceived decimal.Decimal `db:"amount_received" json:"amount_received"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	// PeriodStart and PeriodEnd bound the billing period covered, both optional
	PeriodStart       *time.Time              `db:"period_start" json:"period_start,omitempty"`
	PeriodEnd         *time.Time              `db:"period_end" json:"period_end,omitempty"`
	InstallmentStatus types.InstallmentStatus `db:"installment_status" json:"installment_status"`
	InstallmentType   types.InstallmentType   `db:"installment_type" json:"installment_type"`
	Note              string                  `db:"note" json:"note"`
	// IdempotencyKey is set only on rows created by schedule generation
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key,omitempty"`

	types.BaseModel
}

func (i *Installment) IsPaid() bool {
	return i.InstallmentStatus == types.InstallmentStatusPaid
}

// Outstanding is the amount still to collect, zero once paid
func (i *Installment) Outstanding() decimal.Decimal {
	if i.IsPaid() {
		return decimal.Zero
	}
	rest := i.Amount.Sub(i.AmountReceived)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
