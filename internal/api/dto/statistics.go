package dto

import (
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/shopspring/decimal"
)

// InstallmentStatisticsRequest narrows the dashboard to a contract and a due-date window
type InstallmentStatisticsRequest struct {
	ContractID string  `form:"contract_id"`
	From       *string `form:"from"`
	To         *string `form:"to"`
}

func (r *InstallmentStatisticsRequest) ToFilter() (*types.InstallmentFilter, error) {
	from, err := parseOptionalDateField("from", r.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDateField("to", r.To)
	if err != nil {
		return nil, err
	}

	filter := types.NewNoLimitInstallmentFilter()
	if r.ContractID != "" {
		filter.ContractIDs = []string{r.ContractID}
	}
	filter.DateRange = types.DateRangeFilter{From: from, To: to}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}

type StatusBreakdown struct {
	Status       types.InstallmentStatus `json:"status"`
	StatusLabel  string                  `json:"statusLabel"`
	Count        int                     `json:"count"`
	TotalReceive decimal.Decimal         `json:"totalReceive"`
	TotalSend    decimal.Decimal         `json:"totalSend"`
}

type TypeBreakdown struct {
	Type         types.InstallmentType `json:"type"`
	TypeLabel    string                `json:"typeLabel"`
	Count        int                   `json:"count"`
	TotalReceive decimal.Decimal       `json:"totalReceive"`
	TotalSend    decimal.Decimal       `json:"totalSend"`
}

type InstallmentStatisticsResponse struct {
	ContractID   string            `json:"contractId,omitempty"`
	From         *string           `json:"from,omitempty"`
	To           *string           `json:"to,omitempty"`
	Count        int               `json:"count"`
	TotalReceive decimal.Decimal   `json:"totalReceive"`
	TotalSend    decimal.Decimal   `json:"totalSend"`
	Outstanding  decimal.Decimal   `json:"outstanding"`
	ByStatus     []StatusBreakdown `json:"byStatus"`
	ByType       []TypeBreakdown   `json:"byType"`
}
