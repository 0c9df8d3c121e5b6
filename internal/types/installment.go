package types

import (
	"fmt"
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/samber/lo"
)

// InstallmentStatus is the settlement state of an installment. The numeric
// values are part of the wire format.
type InstallmentStatus int

const (
	InstallmentStatusUnpaid  InstallmentStatus = 0
	InstallmentStatusPaid    InstallmentStatus = 1
	InstallmentStatusOverdue InstallmentStatus = 2
)

var installmentStatusLabels = map[InstallmentStatus]string{
	InstallmentStatusUnpaid:  "Chưa thanh toán",
	InstallmentStatusPaid:    "Đã thanh toán",
	InstallmentStatusOverdue: "Quá hạn",
}

var installmentStatusNames = map[InstallmentStatus]string{
	InstallmentStatusUnpaid:  "UNPAID",
	InstallmentStatusPaid:    "PAID",
	InstallmentStatusOverdue: "OVERDUE",
}

func AllInstallmentStatuses() []InstallmentStatus {
	return []InstallmentStatus{
		InstallmentStatusUnpaid,
		InstallmentStatusPaid,
		InstallmentStatusOverdue,
	}
}

func (s InstallmentStatus) String() string {
	if name, ok := installmentStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InstallmentStatus(%d)", int(s))
}

// Label is the display label shown in back-office screens
func (s InstallmentStatus) Label() string {
	return installmentStatusLabels[s]
}

func (s InstallmentStatus) Validate() error {
	if !lo.Contains(AllInstallmentStatuses(), s) {
		return ierr.NewErrorf("invalid installment status %d", int(s)).
			WithHint("Invalid installment status").
			WithReportableDetails(map[string]any{
				"status":  int(s),
				"allowed": AllInstallmentStatuses(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InstallmentType classifies an installment. It is fixed at creation.
type InstallmentType int

const (
	InstallmentTypeRent    InstallmentType = 1
	InstallmentTypeDeposit InstallmentType = 2
	InstallmentTypeService InstallmentType = 3
)

var installmentTypeLabels = map[InstallmentType]string{
	InstallmentTypeRent:    "Tiền thuê",
	InstallmentTypeDeposit: "Tiền cọc",
	InstallmentTypeService: "Dịch vụ",
}

var installmentTypeNames = map[InstallmentType]string{
	InstallmentTypeRent:    "RENT",
	InstallmentTypeDeposit: "DEPOSIT",
	InstallmentTypeService: "SERVICE",
}

func AllInstallmentTypes() []InstallmentType {
	return []InstallmentType{
		InstallmentTypeRent,
		InstallmentTypeDeposit,
		InstallmentTypeService,
	}
}

func (t InstallmentType) String() string {
	if name, ok := installmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("InstallmentType(%d)", int(t))
}

func (t InstallmentType) Label() string {
	return installmentTypeLabels[t]
}

func (t InstallmentType) Validate() error {
	if !lo.Contains(AllInstallmentTypes(), t) {
		return ierr.NewErrorf("invalid installment type %d", int(t)).
			WithHint("Invalid installment type").
			WithReportableDetails(map[string]any{
				"type":    int(t),
				"allowed": AllInstallmentTypes(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InstallmentFilter represents filters for installment queries
type InstallmentFilter struct {
	*QueryFilter
	DateRange DateRangeFilter

	InstallmentIDs []string            `json:"installment_ids,omitempty" form:"installment_ids"`
	ContractIDs    []string            `json:"contract_ids,omitempty" form:"contract_ids"`
	Statuses       []InstallmentStatus `json:"statuses,omitempty" form:"statuses"`
	Types          []InstallmentType   `json:"types,omitempty" form:"types"`
	// DueBefore matches installments whose due date is strictly before this day
	DueBefore *time.Time `json:"-" form:"-"`
}

// NewInstallmentFilter lists by due date ascending, the natural schedule order
func NewInstallmentFilter() *InstallmentFilter {
	f := NewDefaultQueryFilter()
	f.Sort = lo.ToPtr("due_date")
	f.Order = lo.ToPtr(OrderAsc)
	return &InstallmentFilter{QueryFilter: f}
}

func NewNoLimitInstallmentFilter() *InstallmentFilter {
	f := NewNoLimitQueryFilter()
	f.Sort = lo.ToPtr("due_date")
	f.Order = lo.ToPtr(OrderAsc)
	return &InstallmentFilter{QueryFilter: f}
}

func (f InstallmentFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint(err.Error()).
				Mark(ierr.ErrValidation)
		}
	}
	if err := f.DateRange.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint(err.Error()).
			Mark(ierr.ErrValidation)
	}
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, t := range f.Types {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f InstallmentFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return f.QueryFilter.GetLimit()
}

func (f InstallmentFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return 0
	}
	return f.QueryFilter.GetOffset()
}

func (f InstallmentFilter) GetSort() string {
	if f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "due_date"
	}
	return f.QueryFilter.GetSort()
}

func (f InstallmentFilter) GetOrder() string {
	if f.QueryFilter == nil || f.QueryFilter.Order == nil {
		return OrderAsc
	}
	return f.QueryFilter.GetOrder()
}

func (f InstallmentFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return string(StatusPublished)
	}
	return f.QueryFilter.GetStatus()
}

func (f InstallmentFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return false
	}
	return f.QueryFilter.IsUnlimited()
}
