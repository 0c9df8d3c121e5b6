package types

import (
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/samber/lo"
)

// ContractType distinguishes home rentals from service agreements
type ContractType string

const (
	ContractTypeHome    ContractType = "HOME"
	ContractTypeService ContractType = "SERVICE"
)

var contractTypeLabels = map[ContractType]string{
	ContractTypeHome:    "Hợp đồng thuê nhà",
	ContractTypeService: "Hợp đồng dịch vụ",
}

func (t ContractType) Label() string {
	return contractTypeLabels[t]
}

func (t ContractType) Validate() error {
	allowed := []ContractType{ContractTypeHome, ContractTypeService}
	if !lo.Contains(allowed, t) {
		return ierr.NewErrorf("invalid contract type %q", string(t)).
			WithHint("Invalid contract type").
			WithReportableDetails(map[string]any{
				"contract_type": t,
				"allowed":       allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ScheduleInstallmentType is the type stamped on installments generated for
// a contract of this type.
func (t ContractType) ScheduleInstallmentType() InstallmentType {
	if t == ContractTypeService {
		return InstallmentTypeService
	}
	return InstallmentTypeRent
}

// ContractStatus is the business state of a contract
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusEnded     ContractStatus = "ENDED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

var contractStatusLabels = map[ContractStatus]string{
	ContractStatusActive:    "Đang hiệu lực",
	ContractStatusEnded:     "Đã kết thúc",
	ContractStatusCancelled: "Đã hủy",
}

func (s ContractStatus) Label() string {
	return contractStatusLabels[s]
}

func (s ContractStatus) Validate() error {
	allowed := []ContractStatus{ContractStatusActive, ContractStatusEnded, ContractStatusCancelled}
	if !lo.Contains(allowed, s) {
		return ierr.NewErrorf("invalid contract status %q", string(s)).
			WithHint("Invalid contract status").
			WithReportableDetails(map[string]any{
				"contract_status": s,
				"allowed":         allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ContractFilter represents filters for contract queries
type ContractFilter struct {
	*QueryFilter

	ContractIDs      []string         `json:"contract_ids,omitempty" form:"contract_ids"`
	ContractTypes    []ContractType   `json:"contract_types,omitempty" form:"contract_types"`
	ContractStatuses []ContractStatus `json:"contract_statuses,omitempty" form:"contract_statuses"`
	HomeID           string           `json:"home_id,omitempty" form:"home_id"`
	GuestID          string           `json:"guest_id,omitempty" form:"guest_id"`
}

func NewContractFilter() *ContractFilter {
	return &ContractFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f ContractFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint(err.Error()).
				Mark(ierr.ErrValidation)
		}
	}
	for _, t := range f.ContractTypes {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, s := range f.ContractStatuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f ContractFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return f.QueryFilter.GetLimit()
}

func (f ContractFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return 0
	}
	return f.QueryFilter.GetOffset()
}

func (f ContractFilter) GetSort() string {
	if f.QueryFilter == nil {
		return FILTER_DEFAULT_SORT
	}
	return f.QueryFilter.GetSort()
}

func (f ContractFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return OrderDesc
	}
	return f.QueryFilter.GetOrder()
}

func (f ContractFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return string(StatusPublished)
	}
	return f.QueryFilter.GetStatus()
}

func (f ContractFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return false
	}
	return f.QueryFilter.IsUnlimited()
}
