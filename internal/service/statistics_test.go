package service

import (
	"testing"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/testutil"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatisticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service StatisticsService
}

func TestStatisticsService(t *testing.T) {
	suite.Run(t, new(StatisticsServiceSuite))
}

func (s *StatisticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewStatisticsService(newTestServiceParams(&s.BaseServiceTestSuite))

	seedContract(&s.BaseServiceTestSuite, "ctr_1", types.ContractTypeHome, date(2024, 1, 1), 12, 1)
	seedContract(&s.BaseServiceTestSuite, "ctr_2", types.ContractTypeService, date(2024, 1, 1), 12, 1)

	paid := seedInstallment(&s.BaseServiceTestSuite, "inst_jan", "ctr_1", date(2024, 1, 1), types.InstallmentStatusPaid, 0)
	paid.AmountReceived = paid.Amount
	s.Require().NoError(s.GetStores().InstallmentRepo.Update(s.GetContext(), paid))

	partial := seedInstallment(&s.BaseServiceTestSuite, "inst_feb", "ctr_1", date(2024, 2, 1), types.InstallmentStatusOverdue, 1)
	partial.AmountReceived = decimal.NewFromInt(2000000)
	s.Require().NoError(s.GetStores().InstallmentRepo.Update(s.GetContext(), partial))

	seedInstallment(&s.BaseServiceTestSuite, "inst_mar", "ctr_1", date(2024, 3, 1), types.InstallmentStatusUnpaid, 2)

	svc := seedInstallment(&s.BaseServiceTestSuite, "inst_svc", "ctr_2", date(2024, 3, 1), types.InstallmentStatusUnpaid, 3)
	svc.InstallmentType = types.InstallmentTypeService
	s.Require().NoError(s.GetStores().InstallmentRepo.Update(s.GetContext(), svc))
}

func (s *StatisticsServiceSuite) TestAllInstallments() {
	resp, err := s.service.GetInstallmentStatistics(s.GetContext(), dto.InstallmentStatisticsRequest{})
	s.Require().NoError(err)

	s.Equal(4, resp.Count)
	s.True(resp.TotalReceive.Equal(decimal.NewFromInt(20000000)), resp.TotalReceive.String())
	s.True(resp.TotalSend.Equal(decimal.NewFromInt(7000000)), resp.TotalSend.String())
	// 3,000,000 left on February plus March and the service row in full
	s.True(resp.Outstanding.Equal(decimal.NewFromInt(13000000)), resp.Outstanding.String())

	s.Len(resp.ByStatus, 3)
	counts := lo.SliceToMap(resp.ByStatus, func(b dto.StatusBreakdown) (types.InstallmentStatus, int) {
		return b.Status, b.Count
	})
	s.Equal(map[types.InstallmentStatus]int{
		types.InstallmentStatusUnpaid:  2,
		types.InstallmentStatusPaid:    1,
		types.InstallmentStatusOverdue: 1,
	}, counts)

	s.Len(resp.ByType, 3)
	deposit, ok := lo.Find(resp.ByType, func(b dto.TypeBreakdown) bool {
		return b.Type == types.InstallmentTypeDeposit
	})
	s.Require().True(ok)
	s.Zero(deposit.Count)
	s.True(deposit.TotalReceive.IsZero())
	s.Equal("Tiền cọc", deposit.TypeLabel)
}

func (s *StatisticsServiceSuite) TestFilteredByContractAndWindow() {
	resp, err := s.service.GetInstallmentStatistics(s.GetContext(), dto.InstallmentStatisticsRequest{
		ContractID: "ctr_1",
		From:       lo.ToPtr("2024-02-01"),
		To:         lo.ToPtr("2024-03-01"),
	})
	s.Require().NoError(err)

	s.Equal(2, resp.Count)
	s.Equal("ctr_1", resp.ContractID)
	s.Equal("2024-02-01", *resp.From)
	s.Equal("2024-03-01", *resp.To)
}

func (s *StatisticsServiceSuite) TestInvalidWindow() {
	_, err := s.service.GetInstallmentStatistics(s.GetContext(), dto.InstallmentStatisticsRequest{
		From: lo.ToPtr("2024-03-01"),
		To:   lo.ToPtr("2024-02-01"),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.GetInstallmentStatistics(s.GetContext(), dto.InstallmentStatisticsRequest{
		From: lo.ToPtr("March"),
	})
	s.True(ierr.IsValidation(err))
}
