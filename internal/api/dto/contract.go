package dto

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/domain/contract"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/rentdesk/rentdesk/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	ContractType   types.ContractType `json:"contract_type" validate:"required"`
	HomeID         string             `json:"home_id" validate:"required"`
	GuestID        string             `json:"guest_id" validate:"required"`
	Reference      string             `json:"reference"`
	StartDate      string             `json:"start_date" validate:"required"`
	DurationMonths int                `json:"duration_months" validate:"required,gt=0"`
	PayCycleMonths int                `json:"pay_cycle_months" validate:"required,gt=0"`
	Price          decimal.Decimal    `json:"price"`
	Deposit        decimal.Decimal    `json:"deposit"`
	Note           string             `json:"note"`
}

func (r *CreateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.ContractType.Validate(); err != nil {
		return err
	}
	if _, err := parseDateField("start_date", r.StartDate); err != nil {
		return err
	}
	return nil
}

func (r *CreateContractRequest) ToContract(ctx context.Context) (*contract.Contract, error) {
	start, err := parseDateField("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}

	c := &contract.Contract{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		ContractType:   r.ContractType,
		HomeID:         r.HomeID,
		GuestID:        r.GuestID,
		Reference:      r.Reference,
		StartDate:      start,
		DurationMonths: r.DurationMonths,
		PayCycleMonths: r.PayCycleMonths,
		Price:          r.Price,
		Deposit:        r.Deposit,
		ContractStatus: types.ContractStatusActive,
		Note:           r.Note,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContractRequest edits fields that do not affect the installment schedule
type UpdateContractRequest struct {
	GuestID        *string               `json:"guest_id,omitempty"`
	Reference      *string               `json:"reference,omitempty"`
	Deposit        *decimal.Decimal      `json:"deposit,omitempty"`
	ContractStatus *types.ContractStatus `json:"contract_status,omitempty"`
	Note           *string               `json:"note,omitempty"`
}

func (r *UpdateContractRequest) Validate() error {
	if r.ContractStatus != nil {
		if err := r.ContractStatus.Validate(); err != nil {
			return err
		}
	}
	if r.Deposit != nil && r.Deposit.IsNegative() {
		return ierr.NewError("invalid deposit").
			WithHint("Deposit cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.GuestID != nil && *r.GuestID == "" {
		return ierr.NewError("guest id is empty").
			WithHint("guest_id cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ContractResponse struct {
	*contract.Contract
	EndDate             string `json:"end_date"`
	ContractTypeLabel   string `json:"contract_type_label"`
	ContractStatusLabel string `json:"contract_status_label"`
}

func NewContractResponse(c *contract.Contract) *ContractResponse {
	return &ContractResponse{
		Contract:            c,
		EndDate:             types.FormatDate(c.EndDate()),
		ContractTypeLabel:   c.ContractType.Label(),
		ContractStatusLabel: c.ContractStatus.Label(),
	}
}

// ListContractsResponse represents a paginated list of contracts
type ListContractsResponse = types.ListResponse[*ContractResponse]
