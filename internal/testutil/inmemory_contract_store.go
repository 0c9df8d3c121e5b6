package testutil

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/domain/contract"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

// InMemoryContractStore implements contract.Repository
type InMemoryContractStore struct {
	*InMemoryStore[*contract.Contract]
}

func NewInMemoryContractStore() *InMemoryContractStore {
	return &InMemoryContractStore{
		InMemoryStore: NewInMemoryStore[*contract.Contract](),
	}
}

func contractFilterFn(ctx context.Context, c *contract.Contract, filter interface{}) bool {
	if c == nil || !matchesTenant(ctx, c.TenantID) {
		return false
	}

	f, ok := filter.(*types.ContractFilter)
	if !ok {
		return true
	}

	if c.Status != types.Status(f.GetStatus()) {
		return false
	}
	if len(f.ContractIDs) > 0 && !lo.Contains(f.ContractIDs, c.ID) {
		return false
	}
	if len(f.ContractTypes) > 0 && !lo.Contains(f.ContractTypes, c.ContractType) {
		return false
	}
	if len(f.ContractStatuses) > 0 && !lo.Contains(f.ContractStatuses, c.ContractStatus) {
		return false
	}
	if f.HomeID != "" && c.HomeID != f.HomeID {
		return false
	}
	if f.GuestID != "" && c.GuestID != f.GuestID {
		return false
	}
	return true
}

func contractSortFn(i, j *contract.Contract) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryContractStore) Create(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryContractStore) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !matchesTenant(ctx, c.TenantID) || c.Status != types.StatusPublished {
		return nil, ierr.NewErrorf("contract %s not found", id).
			WithHint("Contract not found").
			Mark(ierr.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *InMemoryContractStore) Update(ctx context.Context, c *contract.Contract) error {
	if c == nil {
		return ierr.NewError("contract cannot be nil").Mark(ierr.ErrValidation)
	}
	copied := *c
	return s.InMemoryStore.Update(ctx, c.ID, &copied)
}

func (s *InMemoryContractStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, c)
}

func (s *InMemoryContractStore) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	return s.InMemoryStore.List(ctx, filter, contractFilterFn, contractSortFn)
}

func (s *InMemoryContractStore) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, contractFilterFn)
}
