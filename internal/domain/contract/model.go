package contract

import (
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Contract is the parent of a schedule of installments, either a home rental
// or a service agreement.
type Contract struct {
	ID             string               `db:"id" json:"id"`
	ContractType   types.ContractType   `db:"contract_type" json:"contract_type"`
	HomeID         string               `db:"home_id" json:"home_id"`
	GuestID        string               `db:"guest_id" json:"guest_id"`
	Reference      string               `db:"reference" json:"reference"`
	StartDate      time.Time            `db:"start_date" json:"start_date"`
	DurationMonths int                  `db:"duration_months" json:"duration_months"`
	PayCycleMonths int                  `db:"pay_cycle_months" json:"pay_cycle_months"`
	Price          decimal.Decimal      `db:"price" json:"price"`
	Deposit        decimal.Decimal      `db:"deposit" json:"deposit"`
	ContractStatus types.ContractStatus `db:"contract_status" json:"contract_status"`
	Note           string               `db:"note" json:"note"`

	types.BaseModel
}

// EndDate is the start date plus the contract duration in calendar months
func (c *Contract) EndDate() time.Time {
	return types.AddMonths(types.DateOf(c.StartDate), c.DurationMonths)
}

// InstallmentAmount is the amount due per pay cycle
func (c *Contract) InstallmentAmount() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.PayCycleMonths)))
}

func (c *Contract) Validate() error {
	if err := c.ContractType.Validate(); err != nil {
		return err
	}
	if err := c.ContractStatus.Validate(); err != nil {
		return err
	}
	if c.StartDate.IsZero() {
		return ierr.NewError("start date is required").
			WithHint("Contract start date is required").
			Mark(ierr.ErrValidation)
	}
	if c.DurationMonths <= 0 {
		return ierr.NewErrorf("invalid duration %d", c.DurationMonths).
			WithHint("Contract duration must be at least one month").
			WithReportableDetails(map[string]any{"duration_months": c.DurationMonths}).
			Mark(ierr.ErrValidation)
	}
	if c.PayCycleMonths <= 0 {
		return ierr.NewErrorf("invalid pay cycle %d", c.PayCycleMonths).
			WithHint("Pay cycle must be at least one month").
			WithReportableDetails(map[string]any{"pay_cycle_months": c.PayCycleMonths}).
			Mark(ierr.ErrValidation)
	}
	if !c.Price.IsPositive() {
		return ierr.NewError("invalid price").
			WithHint("Price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if c.Deposit.IsNegative() {
		return ierr.NewError("invalid deposit").
			WithHint("Deposit cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
