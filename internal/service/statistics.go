package service

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type StatisticsService interface {
	// GetInstallmentStatistics summarizes installments by status and type.
	// Outstanding sums what is still to collect on rows that are not PAID.
	GetInstallmentStatistics(ctx context.Context, req dto.InstallmentStatisticsRequest) (*dto.InstallmentStatisticsResponse, error)
}

type statisticsService struct {
	ServiceParams
}

func NewStatisticsService(params ServiceParams) StatisticsService {
	return &statisticsService{
		ServiceParams: params,
	}
}

func (s *statisticsService) GetInstallmentStatistics(ctx context.Context, req dto.InstallmentStatisticsRequest) (*dto.InstallmentStatisticsResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	items, err := s.InstallmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.InstallmentStatisticsResponse{
		ContractID:   req.ContractID,
		From:         types.FormatNillableDate(filter.DateRange.From),
		To:           types.FormatNillableDate(filter.DateRange.To),
		Count:        len(items),
		TotalReceive: sumAmounts(items),
		TotalSend:    sumReceived(items),
		Outstanding:  decimal.Zero,
	}

	for _, i := range items {
		response.Outstanding = response.Outstanding.Add(i.Outstanding())
	}

	byStatus := lo.GroupBy(items, func(i *installment.Installment) types.InstallmentStatus {
		return i.InstallmentStatus
	})
	response.ByStatus = lo.Map(types.AllInstallmentStatuses(), func(st types.InstallmentStatus, _ int) dto.StatusBreakdown {
		group := byStatus[st]
		return dto.StatusBreakdown{
			Status:       st,
			StatusLabel:  st.Label(),
			Count:        len(group),
			TotalReceive: sumAmounts(group),
			TotalSend:    sumReceived(group),
		}
	})

	byType := lo.GroupBy(items, func(i *installment.Installment) types.InstallmentType {
		return i.InstallmentType
	})
	response.ByType = lo.Map(types.AllInstallmentTypes(), func(t types.InstallmentType, _ int) dto.TypeBreakdown {
		group := byType[t]
		return dto.TypeBreakdown{
			Type:         t,
			TypeLabel:    t.Label(),
			Count:        len(group),
			TotalReceive: sumAmounts(group),
			TotalSend:    sumReceived(group),
		}
	})

	return response, nil
}

func sumAmounts(items []*installment.Installment) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, i *installment.Installment, _ int) decimal.Decimal {
		return acc.Add(i.Amount)
	}, decimal.Zero)
}

func sumReceived(items []*installment.Installment) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, i *installment.Installment, _ int) decimal.Decimal {
		return acc.Add(i.AmountReceived)
	}, decimal.Zero)
}
