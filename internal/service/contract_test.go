package service

import (
	"testing"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/testutil"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ContractServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContractService
}

func TestContractService(t *testing.T) {
	suite.Run(t, new(ContractServiceSuite))
}

func (s *ContractServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewContractService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ContractServiceSuite) validRequest() dto.CreateContractRequest {
	return dto.CreateContractRequest{
		ContractType:   types.ContractTypeHome,
		HomeID:         "home_1",
		GuestID:        "guest_1",
		StartDate:      "2024-01-31",
		DurationMonths: 12,
		PayCycleMonths: 3,
		Price:          decimal.NewFromInt(5000000),
		Deposit:        decimal.NewFromInt(10000000),
	}
}

func (s *ContractServiceSuite) TestCreateContract() {
	resp, err := s.service.CreateContract(s.GetContext(), s.validRequest())
	s.Require().NoError(err)

	s.NotEmpty(resp.ID)
	s.Equal(types.ContractStatusActive, resp.ContractStatus)
	s.Equal("2025-01-31", resp.EndDate)
	s.Equal("Hợp đồng thuê nhà", resp.ContractTypeLabel)
	s.Equal(types.DefaultTenantID, resp.TenantID)
	s.Equal(types.StatusPublished, resp.Status)

	stored, err := s.GetStores().ContractRepo.Get(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal(date(2024, 1, 31), stored.StartDate)
}

func (s *ContractServiceSuite) TestCreateContractValidation() {
	tests := []struct {
		name   string
		mutate func(r *dto.CreateContractRequest)
	}{
		{"unknown type", func(r *dto.CreateContractRequest) { r.ContractType = "BOAT" }},
		{"missing home", func(r *dto.CreateContractRequest) { r.HomeID = "" }},
		{"bad start date", func(r *dto.CreateContractRequest) { r.StartDate = "31/01/2024" }},
		{"zero duration", func(r *dto.CreateContractRequest) { r.DurationMonths = 0 }},
		{"zero price", func(r *dto.CreateContractRequest) { r.Price = decimal.Zero }},
		{"negative deposit", func(r *dto.CreateContractRequest) { r.Deposit = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.validRequest()
			tt.mutate(&req)
			_, err := s.service.CreateContract(s.GetContext(), req)
			s.True(ierr.IsValidation(err), "got %v", err)
		})
	}
}

func (s *ContractServiceSuite) TestGetContracts() {
	seedContract(&s.BaseServiceTestSuite, "ctr_home", types.ContractTypeHome, date(2024, 1, 1), 12, 1)
	seedContract(&s.BaseServiceTestSuite, "ctr_svc", types.ContractTypeService, date(2024, 1, 1), 12, 1)

	filter := types.NewContractFilter()
	filter.ContractTypes = []types.ContractType{types.ContractTypeService}
	resp, err := s.service.GetContracts(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("ctr_svc", resp.Items[0].ID)

	resp, err = s.service.GetContracts(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Equal(2, resp.Pagination.Total)
}

func (s *ContractServiceSuite) TestUpdateContractInvalidatesCache() {
	seedContract(&s.BaseServiceTestSuite, "ctr_1", types.ContractTypeHome, date(2024, 1, 1), 12, 1)

	// warm the cache
	_, err := s.service.GetContract(s.GetContext(), "ctr_1")
	s.Require().NoError(err)

	resp, err := s.service.UpdateContract(s.GetContext(), "ctr_1", dto.UpdateContractRequest{
		ContractStatus: lo.ToPtr(types.ContractStatusEnded),
		Note:           lo.ToPtr("moved out"),
	})
	s.Require().NoError(err)
	s.Equal(types.ContractStatusEnded, resp.ContractStatus)

	got, err := s.service.GetContract(s.GetContext(), "ctr_1")
	s.Require().NoError(err)
	s.Equal(types.ContractStatusEnded, got.ContractStatus)
	s.Equal("moved out", got.Note)
	s.Equal("Đã kết thúc", got.ContractStatusLabel)
}

func (s *ContractServiceSuite) TestUpdateContractValidation() {
	seedContract(&s.BaseServiceTestSuite, "ctr_1", types.ContractTypeHome, date(2024, 1, 1), 12, 1)

	_, err := s.service.UpdateContract(s.GetContext(), "ctr_1", dto.UpdateContractRequest{
		ContractStatus: lo.ToPtr(types.ContractStatus("PAUSED")),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateContract(s.GetContext(), "ctr_1", dto.UpdateContractRequest{
		Deposit: lo.ToPtr(decimal.NewFromInt(-10)),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateContract(s.GetContext(), "ctr_missing", dto.UpdateContractRequest{
		Note: lo.ToPtr("x"),
	})
	s.True(ierr.IsNotFound(err))
}

func (s *ContractServiceSuite) TestDeleteContract() {
	seedContract(&s.BaseServiceTestSuite, "ctr_1", types.ContractTypeHome, date(2024, 1, 1), 12, 1)

	_, err := s.service.GetContract(s.GetContext(), "ctr_1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteContract(s.GetContext(), "ctr_1"))

	_, err = s.service.GetContract(s.GetContext(), "ctr_1")
	s.True(ierr.IsNotFound(err))

	// installments can no longer be attached to an archived contract
	installments := NewInstallmentService(newTestServiceParams(&s.BaseServiceTestSuite))
	_, err = installments.CreateInstallment(s.GetContext(), dto.CreateInstallmentRequest{
		ContractID:       "ctr_1",
		TotalReceive:     decimal.NewFromInt(1000),
		DatePaymentExpec: lo.ToPtr("2024-02-01"),
		Type:             types.InstallmentTypeRent,
	})
	s.True(ierr.IsNotFound(err))
}

func (s *ContractServiceSuite) TestLoadContractUsesCache() {
	seedContract(&s.BaseServiceTestSuite, "ctr_1", types.ContractTypeHome, date(2024, 1, 1), 12, 1)
	params := newTestServiceParams(&s.BaseServiceTestSuite)

	first, err := params.loadContract(s.GetContext(), "ctr_1")
	s.Require().NoError(err)

	cached, ok := s.GetCache().Get(s.GetContext(), contractCacheKey(s.GetContext(), "ctr_1"))
	s.Require().True(ok)
	s.Same(first, cached.(*contract.Contract))

	second, err := params.loadContract(s.GetContext(), "ctr_1")
	s.Require().NoError(err)
	s.Same(first, second)
}
