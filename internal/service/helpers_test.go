package service

import (
	"time"

	"github.com/rentdesk/rentdesk/internal/domain/contract"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/testutil"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/shopspring/decimal"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetClock(),
		stores.ContractRepo,
		stores.InstallmentRepo,
		s.GetWebhookPublisher(),
		s.GetIdempotencyGenerator(),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedContract(s *testutil.BaseServiceTestSuite, id string, typ types.ContractType, start time.Time, durationMonths, payCycleMonths int) *contract.Contract {
	c := &contract.Contract{
		ID:             id,
		ContractType:   typ,
		HomeID:         "home_1",
		GuestID:        "guest_1",
		StartDate:      start,
		DurationMonths: durationMonths,
		PayCycleMonths: payCycleMonths,
		Price:          decimal.NewFromInt(5000000),
		Deposit:        decimal.NewFromInt(10000000),
		ContractStatus: types.ContractStatusActive,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ContractRepo.Create(s.GetContext(), c))
	return c
}

// seedInstallment stores an installment; created orders rows the way
// ListByContract returns them
func seedInstallment(s *testutil.BaseServiceTestSuite, id, contractID string, due time.Time, status types.InstallmentStatus, created int) *installment.Installment {
	i := &installment.Installment{
		ID:                id,
		ContractID:        contractID,
		Amount:            decimal.NewFromInt(5000000),
		AmountReceived:    decimal.Zero,
		DueDate:           due,
		InstallmentStatus: status,
		InstallmentType:   types.InstallmentTypeRent,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	i.CreatedAt = testutil.DefaultNow.Add(time.Duration(created) * time.Minute)
	s.Require().NoError(s.GetStores().InstallmentRepo.Create(s.GetContext(), i))
	return i
}
