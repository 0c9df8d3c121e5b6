package service

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	"github.com/rentdesk/rentdesk/internal/cache"
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

type ContractService interface {
	CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error)
	GetContract(ctx context.Context, id string) (*dto.ContractResponse, error)
	GetContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error)
	UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error)
	DeleteContract(ctx context.Context, id string) error
}

type contractService struct {
	ServiceParams
}

func NewContractService(params ServiceParams) ContractService {
	return &contractService{
		ServiceParams: params,
	}
}

func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := req.ToContract(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ContractRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created contract",
		"contract_id", c.ID,
		"contract_type", c.ContractType,
		"home_id", c.HomeID,
	)
	return dto.NewContractResponse(c), nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := s.loadContract(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewContractResponse(c), nil
}

func (s *contractService) GetContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error) {
	if filter == nil {
		filter = types.NewContractFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	contracts, err := s.ContractRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ContractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(contracts, func(c *contract.Contract, _ int) *dto.ContractResponse {
		return dto.NewContractResponse(c)
	})
	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *contractService) UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	if id == "" {
		return nil, ierr.NewError("contract ID is required").
			WithHint("Contract ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GuestID != nil {
		c.GuestID = *req.GuestID
	}
	if req.Reference != nil {
		c.Reference = *req.Reference
	}
	if req.Deposit != nil {
		c.Deposit = *req.Deposit
	}
	if req.ContractStatus != nil {
		c.ContractStatus = *req.ContractStatus
	}
	if req.Note != nil {
		c.Note = *req.Note
	}
	c.UpdatedAt = s.Clock.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	if err := s.ContractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, contractCacheKey(ctx, id))

	return dto.NewContractResponse(c), nil
}

func (s *contractService) DeleteContract(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("contract ID is required").
			WithHint("Contract ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.ContractRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, contractCacheKey(ctx, id))

	s.Logger.Infow("archived contract", "contract_id", id)
	return nil
}

func contractCacheKey(ctx context.Context, id string) string {
	return cache.GenerateKey(cache.PrefixContract, types.GetTenantID(ctx), id)
}

// loadContract reads a contract through the cache. Installment validation
// hits this on every write.
func (p ServiceParams) loadContract(ctx context.Context, id string) (*contract.Contract, error) {
	key := contractCacheKey(ctx, id)
	if cached, ok := p.Cache.Get(ctx, key); ok {
		if c, ok := cached.(*contract.Contract); ok {
			return c, nil
		}
	}

	c, err := p.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != types.StatusPublished {
		return nil, ierr.NewErrorf("contract %s is %s", id, c.Status).
			WithHint("Contract not found").
			WithReportableDetails(map[string]any{"contract_id": id}).
			Mark(ierr.ErrNotFound)
	}

	p.Cache.Set(ctx, key, c, 0)
	return c, nil
}
