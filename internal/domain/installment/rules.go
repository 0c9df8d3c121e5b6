package installment

import (
	"sort"
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Messages shown to the user when a transition is rejected or corrected
const (
	MessageFutureSettlement  = "cannot mark an installment paid before its due date"
	MessageUnpaidPredecessor = "earlier unpaid installments exist"
	MessageOverdueCorrection = "installment is past its due date and was marked overdue"
)

// RejectReason identifies which rule blocked a transition
type RejectReason string

const (
	RejectReasonNone              RejectReason = ""
	RejectReasonFutureSettlement  RejectReason = "future_settlement"
	RejectReasonUnpaidPredecessor RejectReason = "unpaid_predecessor"
)

// TransitionDecision is the outcome of ValidateTransition. When CorrectedStatus
// is set the caller must persist it instead of the requested status and show
// Message as a warning.
type TransitionDecision struct {
	Allowed         bool
	Message         string
	CorrectedStatus *types.InstallmentStatus
	Reason          RejectReason
}

func (d TransitionDecision) Corrected() bool {
	return d.Allowed && d.CorrectedStatus != nil
}

// EffectiveStatus is the status to persist for an allowed decision
func (d TransitionDecision) EffectiveStatus(proposed types.InstallmentStatus) types.InstallmentStatus {
	if d.CorrectedStatus != nil {
		return *d.CorrectedStatus
	}
	return proposed
}

// SortedByDueDate returns a copy of items ordered by due date. Installments
// sharing a due date keep their relative input order.
func SortedByDueDate(items []*Installment) []*Installment {
	sorted := make([]*Installment, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.CompareDates(sorted[i].DueDate, sorted[j].DueDate) < 0
	})
	return sorted
}

// ValidateTransition decides whether target may move to proposed. siblings is
// the contract's installment set, target included or not, in creation order.
// Rules apply in order and the first match wins:
//  1. PAID is rejected while the due date is still in the future.
//  2. PAID is rejected while any installment earlier in due-date order is UNPAID.
//  3. An UNPAID installment past its due date is corrected to OVERDUE unless
//     OVERDUE was requested.
//  4. Anything else is allowed as requested.
func ValidateTransition(target *Installment, proposed types.InstallmentStatus, siblings []*Installment, now time.Time) TransitionDecision {
	today := types.DateOf(now)
	due := types.DateOf(target.DueDate)

	if proposed == types.InstallmentStatusPaid {
		if due.After(today) {
			return TransitionDecision{
				Message: MessageFutureSettlement,
				Reason:  RejectReasonFutureSettlement,
			}
		}

		if hasUnpaidPredecessor(target, siblings) {
			return TransitionDecision{
				Message: MessageUnpaidPredecessor,
				Reason:  RejectReasonUnpaidPredecessor,
			}
		}
	}

	if due.Before(today) &&
		target.InstallmentStatus == types.InstallmentStatusUnpaid &&
		proposed != types.InstallmentStatusOverdue {
		return TransitionDecision{
			Allowed:         true,
			Message:         MessageOverdueCorrection,
			CorrectedStatus: lo.ToPtr(types.InstallmentStatusOverdue),
		}
	}

	return TransitionDecision{Allowed: true}
}

func hasUnpaidPredecessor(target *Installment, siblings []*Installment) bool {
	sameContract := lo.Filter(siblings, func(s *Installment, _ int) bool {
		return s != nil && s.ContractID == target.ContractID
	})
	ordered := SortedByDueDate(sameContract)

	_, pos, found := lo.FindIndexOf(ordered, func(s *Installment) bool {
		return s.ID == target.ID
	})

	var predecessors []*Installment
	if found {
		predecessors = ordered[:pos]
	} else {
		predecessors = lo.Filter(ordered, func(s *Installment, _ int) bool {
			return types.CompareDates(s.DueDate, target.DueDate) < 0
		})
	}

	return lo.SomeBy(predecessors, func(s *Installment) bool {
		return s.InstallmentStatus == types.InstallmentStatusUnpaid
	})
}

// CreationCandidate is the user input for a manually created installment
type CreationCandidate struct {
	Amount  decimal.Decimal
	DueDate *time.Time
}

// ContractWindow is the part of the parent contract that bounds due dates
type ContractWindow struct {
	StartDate      time.Time
	DurationMonths int
}

func (w ContractWindow) EndDate() time.Time {
	return types.AddMonths(types.DateOf(w.StartDate), w.DurationMonths)
}

// ValidateCreation checks a manual installment against its contract. A due
// date equal to the contract end is accepted.
func ValidateCreation(candidate CreationCandidate, parent ContractWindow) error {
	if !candidate.Amount.IsPositive() {
		return ierr.NewError("installment amount must be positive").
			WithHint("Amount must be greater than 0").
			WithReportableDetails(map[string]any{"amount": candidate.Amount.String()}).
			Mark(ierr.ErrValidation)
	}

	if candidate.DueDate == nil || candidate.DueDate.IsZero() {
		return ierr.NewError("due date is required").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}

	due := types.DateOf(*candidate.DueDate)
	start := types.DateOf(parent.StartDate)
	end := parent.EndDate()

	if due.Before(start) {
		return ierr.NewError("due date before contract start").
			WithHint("Due date cannot be before the contract start date").
			WithReportableDetails(map[string]any{
				"due_date":   types.FormatDate(due),
				"start_date": types.FormatDate(start),
			}).
			Mark(ierr.ErrValidation)
	}

	if due.After(end) {
		return ierr.NewError("due date after contract end").
			WithHint("Due date cannot be after the contract end date").
			WithReportableDetails(map[string]any{
				"due_date": types.FormatDate(due),
				"end_date": types.FormatDate(end),
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}
