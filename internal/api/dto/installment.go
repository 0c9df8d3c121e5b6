package dto

import (
	"context"
	"time"

	"github.com/rentdesk/rentdesk/internal/domain/installment"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/rentdesk/rentdesk/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateInstallmentRequest is a manually entered installment. Wire names
// match the back-office forms.
type CreateInstallmentRequest struct {
	ContractID       string                `json:"contractId" validate:"required"`
	TotalReceive     decimal.Decimal       `json:"totalReceive"`
	TotalSend        *decimal.Decimal      `json:"totalSend,omitempty"`
	DatePaymentExpec *string               `json:"datePaymentExpec,omitempty"`
	DateStar         *string               `json:"dateStar,omitempty"`
	DateEnd          *string               `json:"dateEnd,omitempty"`
	Type             types.InstallmentType `json:"type" validate:"required"`
	Note             string                `json:"note"`
}

func (r *CreateInstallmentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.TotalSend != nil && r.TotalSend.IsNegative() {
		return errNegativeTotalSend()
	}

	start, err := parseOptionalDateField("dateStar", r.DateStar)
	if err != nil {
		return err
	}
	end, err := parseOptionalDateField("dateEnd", r.DateEnd)
	if err != nil {
		return err
	}
	return validatePeriod(start, end)
}

// Candidate is the part of the request checked against the parent contract
func (r *CreateInstallmentRequest) Candidate() (installment.CreationCandidate, error) {
	due, err := parseOptionalDateField("datePaymentExpec", r.DatePaymentExpec)
	if err != nil {
		return installment.CreationCandidate{}, err
	}
	return installment.CreationCandidate{
		Amount:  r.TotalReceive,
		DueDate: due,
	}, nil
}

// ToInstallment builds an UNPAID installment. Call after Validate and the
// contract window check so the due date is known to be present.
func (r *CreateInstallmentRequest) ToInstallment(ctx context.Context) (*installment.Installment, error) {
	due, err := parseDateField("datePaymentExpec", types.FromNillableString(r.DatePaymentExpec))
	if err != nil {
		return nil, err
	}
	start, err := parseOptionalDateField("dateStar", r.DateStar)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDateField("dateEnd", r.DateEnd)
	if err != nil {
		return nil, err
	}

	received := decimal.Zero
	if r.TotalSend != nil {
		received = *r.TotalSend
	}

	return &installment.Installment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INSTALLMENT),
		ContractID:        r.ContractID,
		Amount:            r.TotalReceive,
		AmountReceived:    received,
		DueDate:           due,
		PeriodStart:       start,
		PeriodEnd:         end,
		InstallmentStatus: types.InstallmentStatusUnpaid,
		InstallmentType:   r.Type,
		Note:              r.Note,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}, nil
}

// UpdateInstallmentRequest carries the fields to change. type and contractId
// may be sent but must equal the stored values.
type UpdateInstallmentRequest struct {
	TotalReceive     *decimal.Decimal         `json:"totalReceive,omitempty"`
	TotalSend        *decimal.Decimal         `json:"totalSend,omitempty"`
	DatePaymentExpec *string                  `json:"datePaymentExpec,omitempty"`
	DateStar         *string                  `json:"dateStar,omitempty"`
	DateEnd          *string                  `json:"dateEnd,omitempty"`
	Status           *types.InstallmentStatus `json:"status,omitempty"`
	Type             *types.InstallmentType   `json:"type,omitempty"`
	ContractID       *string                  `json:"contractId,omitempty"`
	Note             *string                  `json:"note,omitempty"`
}

func (r *UpdateInstallmentRequest) Validate() error {
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.Type != nil {
		if err := r.Type.Validate(); err != nil {
			return err
		}
	}
	if r.TotalReceive != nil && !r.TotalReceive.IsPositive() {
		return ierr.NewError("installment amount must be positive").
			WithHint("Amount must be greater than 0").
			WithReportableDetails(map[string]any{"totalReceive": r.TotalReceive.String()}).
			Mark(ierr.ErrValidation)
	}
	if r.TotalSend != nil && r.TotalSend.IsNegative() {
		return errNegativeTotalSend()
	}
	if r.DatePaymentExpec != nil && *r.DatePaymentExpec == "" {
		return ierr.NewError("due date is required").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}
	if _, err := parseOptionalDateField("datePaymentExpec", r.DatePaymentExpec); err != nil {
		return err
	}
	if _, err := parseOptionalDateField("dateStar", r.DateStar); err != nil {
		return err
	}
	if _, err := parseOptionalDateField("dateEnd", r.DateEnd); err != nil {
		return err
	}
	return nil
}

// DueDate returns the requested due date, nil when unchanged
func (r *UpdateInstallmentRequest) DueDate() *time.Time {
	due, _ := parseOptionalDateField("datePaymentExpec", r.DatePaymentExpec)
	return due
}

// Apply copies every field except status onto i. Status goes through the
// transition rules first.
func (r *UpdateInstallmentRequest) Apply(i *installment.Installment) error {
	if r.TotalReceive != nil {
		i.Amount = *r.TotalReceive
	}
	if r.TotalSend != nil {
		i.AmountReceived = *r.TotalSend
	}
	if due := r.DueDate(); due != nil {
		i.DueDate = *due
	}
	if r.DateStar != nil {
		start, err := parseOptionalDateField("dateStar", r.DateStar)
		if err != nil {
			return err
		}
		i.PeriodStart = start
	}
	if r.DateEnd != nil {
		end, err := parseOptionalDateField("dateEnd", r.DateEnd)
		if err != nil {
			return err
		}
		i.PeriodEnd = end
	}
	if r.Note != nil {
		i.Note = *r.Note
	}
	return validatePeriod(i.PeriodStart, i.PeriodEnd)
}

func errNegativeTotalSend() error {
	return ierr.NewError("amount received is negative").
		WithHint("totalSend cannot be negative").
		Mark(ierr.ErrValidation)
}

type InstallmentResponse struct {
	ID               string                  `json:"id"`
	ContractID       string                  `json:"contractId"`
	TotalReceive     decimal.Decimal         `json:"totalReceive"`
	TotalSend        decimal.Decimal         `json:"totalSend"`
	DatePaymentExpec string                  `json:"datePaymentExpec"`
	DateStar         *string                 `json:"dateStar"`
	DateEnd          *string                 `json:"dateEnd"`
	Status           types.InstallmentStatus `json:"status"`
	StatusLabel      string                  `json:"statusLabel"`
	Type             types.InstallmentType   `json:"type"`
	TypeLabel        string                  `json:"typeLabel"`
	Note             string                  `json:"note"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func NewInstallmentResponse(i *installment.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:               i.ID,
		ContractID:       i.ContractID,
		TotalReceive:     i.Amount,
		TotalSend:        i.AmountReceived,
		DatePaymentExpec: types.FormatDate(i.DueDate),
		DateStar:         types.FormatNillableDate(i.PeriodStart),
		DateEnd:          types.FormatNillableDate(i.PeriodEnd),
		Status:           i.InstallmentStatus,
		StatusLabel:      i.InstallmentStatus.Label(),
		Type:             i.InstallmentType,
		TypeLabel:        i.InstallmentType.Label(),
		Note:             i.Note,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// UpdateInstallmentResponse flags when the stored status differs from the
// requested one
type UpdateInstallmentResponse struct {
	*InstallmentResponse
	Corrected bool   `json:"corrected"`
	Warning   string `json:"warning,omitempty"`
}

// ListInstallmentsResponse represents a paginated list of installments
type ListInstallmentsResponse = types.ListResponse[*InstallmentResponse]

// GenerateScheduleResponse reports the rows created by schedule generation
type GenerateScheduleResponse struct {
	ContractID string                 `json:"contractId"`
	Created    int                    `json:"created"`
	Skipped    int                    `json:"skipped"`
	Items      []*InstallmentResponse `json:"items"`
}

// MarkOverdueResponse reports the result of an overdue sweep
type MarkOverdueResponse struct {
	Date   string `json:"date"`
	Marked int    `json:"marked"`
}
