package installment

import (
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ScheduleRequest describes the contract terms a schedule is generated from
type ScheduleRequest struct {
	StartDate         time.Time
	DurationMonths    int
	PayCycleMonths    int
	InstallmentAmount decimal.Decimal
}

// ScheduledInstallment is one planned installment, not yet persisted
type ScheduledInstallment struct {
	DueDate     time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
}

// GenerateSchedule plans installments every PayCycleMonths from StartDate.
// Due dates are computed from the start date each step, so end-of-month
// clamping never accumulates. A due date falling on the contract end starts
// a period outside the contract and is not generated.
func GenerateSchedule(req ScheduleRequest) ([]ScheduledInstallment, error) {
	if req.PayCycleMonths <= 0 {
		return nil, ierr.NewErrorf("invalid pay cycle %d", req.PayCycleMonths).
			WithHint("Pay cycle must be at least one month").
			WithReportableDetails(map[string]any{"pay_cycle_months": req.PayCycleMonths}).
			Mark(ierr.ErrValidation)
	}
	if req.DurationMonths <= 0 {
		return nil, ierr.NewErrorf("invalid duration %d", req.DurationMonths).
			WithHint("Contract duration must be at least one month").
			WithReportableDetails(map[string]any{"duration_months": req.DurationMonths}).
			Mark(ierr.ErrValidation)
	}
	if req.StartDate.IsZero() {
		return nil, ierr.NewError("start date is required").
			WithHint("Contract start date is required").
			Mark(ierr.ErrValidation)
	}
	if !req.InstallmentAmount.IsPositive() {
		return nil, ierr.NewError("installment amount must be positive").
			WithHint("Amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	start := types.DateOf(req.StartDate)
	end := types.AddMonths(start, req.DurationMonths)

	var planned []ScheduledInstallment
	for k := 0; ; k++ {
		due := types.AddMonths(start, k*req.PayCycleMonths)
		if !due.Before(end) {
			break
		}

		next := types.AddMonths(start, (k+1)*req.PayCycleMonths)
		if next.After(end) {
			next = end
		}

		planned = append(planned, ScheduledInstallment{
			DueDate:     due,
			PeriodStart: due,
			PeriodEnd:   next.AddDate(0, 0, -1),
			Amount:      req.InstallmentAmount,
		})
	}

	return planned, nil
}

// ExcludeExisting drops planned installments whose due date already holds an
// installment of typ. It returns the remaining plan and the number skipped.
func ExcludeExisting(planned []ScheduledInstallment, existing []*Installment, typ types.InstallmentType) ([]ScheduledInstallment, int) {
	taken := make(map[time.Time]struct{}, len(existing))
	for _, e := range existing {
		if e.InstallmentType == typ {
			taken[types.DateOf(e.DueDate)] = struct{}{}
		}
	}

	remaining := lo.Filter(planned, func(p ScheduledInstallment, _ int) bool {
		_, ok := taken[types.DateOf(p.DueDate)]
		return !ok
	})
	return remaining, len(planned) - len(remaining)
}
