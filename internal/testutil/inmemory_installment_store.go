package testutil

import (
	"context"
	"sort"

	"github.com/rentdesk/rentdesk/internal/domain/installment"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

// InMemoryInstallmentStore implements installment.Repository
type InMemoryInstallmentStore struct {
	*InMemoryStore[*installment.Installment]
}

func NewInMemoryInstallmentStore() *InMemoryInstallmentStore {
	return &InMemoryInstallmentStore{
		InMemoryStore: NewInMemoryStore[*installment.Installment](),
	}
}

func installmentFilterFn(ctx context.Context, i *installment.Installment, filter interface{}) bool {
	if i == nil || !matchesTenant(ctx, i.TenantID) {
		return false
	}

	f, ok := filter.(*types.InstallmentFilter)
	if !ok {
		return true
	}

	if i.Status != types.Status(f.GetStatus()) {
		return false
	}
	if len(f.InstallmentIDs) > 0 && !lo.Contains(f.InstallmentIDs, i.ID) {
		return false
	}
	if len(f.ContractIDs) > 0 && !lo.Contains(f.ContractIDs, i.ContractID) {
		return false
	}
	if len(f.Statuses) > 0 && !lo.Contains(f.Statuses, i.InstallmentStatus) {
		return false
	}
	if len(f.Types) > 0 && !lo.Contains(f.Types, i.InstallmentType) {
		return false
	}
	if !f.DateRange.Contains(i.DueDate) {
		return false
	}
	if f.DueBefore != nil && types.CompareDates(i.DueDate, *f.DueBefore) >= 0 {
		return false
	}
	return true
}

// installmentSortFn orders by due date, then creation time
func installmentSortFn(i, j *installment.Installment) bool {
	if c := types.CompareDates(i.DueDate, j.DueDate); c != 0 {
		return c < 0
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryInstallmentStore) Create(ctx context.Context, i *installment.Installment) error {
	if i == nil {
		return ierr.NewError("installment cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := s.checkIdempotencyKey(i); err != nil {
		return err
	}
	copied := *i
	return s.InMemoryStore.Create(ctx, i.ID, &copied)
}

// CreateBulk stores every row or none
func (s *InMemoryInstallmentStore) CreateBulk(ctx context.Context, items []*installment.Installment) error {
	seen := make(map[string]struct{}, len(items))
	for _, i := range items {
		if i == nil {
			return ierr.NewError("installment cannot be nil").Mark(ierr.ErrValidation)
		}
		if _, dup := seen[i.ID]; dup {
			return ierr.NewErrorf("duplicate installment %s", i.ID).Mark(ierr.ErrAlreadyExists)
		}
		seen[i.ID] = struct{}{}
		if _, err := s.InMemoryStore.Get(ctx, i.ID); err == nil {
			return ierr.NewErrorf("installment %s already exists", i.ID).Mark(ierr.ErrAlreadyExists)
		}
		if err := s.checkIdempotencyKey(i); err != nil {
			return err
		}
	}

	for _, i := range items {
		copied := *i
		if err := s.InMemoryStore.Create(ctx, i.ID, &copied); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryInstallmentStore) checkIdempotencyKey(i *installment.Installment) error {
	if i.IdempotencyKey == "" {
		return nil
	}
	existing, _ := s.InMemoryStore.List(context.Background(), nil, nil, nil)
	if lo.ContainsBy(existing, func(e *installment.Installment) bool {
		return e.TenantID == i.TenantID && e.IdempotencyKey == i.IdempotencyKey
	}) {
		return ierr.NewErrorf("idempotency key %s already used", i.IdempotencyKey).
			WithHint("Installment already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryInstallmentStore) Get(ctx context.Context, id string) (*installment.Installment, error) {
	i, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !matchesTenant(ctx, i.TenantID) {
		return nil, ierr.NewErrorf("installment %s not found", id).
			WithHint("Installment not found").
			Mark(ierr.ErrNotFound)
	}
	copied := *i
	return &copied, nil
}

func (s *InMemoryInstallmentStore) Update(ctx context.Context, i *installment.Installment) error {
	if i == nil {
		return ierr.NewError("installment cannot be nil").Mark(ierr.ErrValidation)
	}
	copied := *i
	return s.InMemoryStore.Update(ctx, i.ID, &copied)
}

func (s *InMemoryInstallmentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryInstallmentStore) List(ctx context.Context, filter *types.InstallmentFilter) ([]*installment.Installment, error) {
	return s.InMemoryStore.List(ctx, filter, installmentFilterFn, installmentSortFn)
}

func (s *InMemoryInstallmentStore) Count(ctx context.Context, filter *types.InstallmentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, installmentFilterFn)
}

func (s *InMemoryInstallmentStore) ListByContract(ctx context.Context, contractID string) ([]*installment.Installment, error) {
	all, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, i *installment.Installment, _ interface{}) bool {
		return matchesTenant(ctx, i.TenantID) && i.ContractID == contractID
	}, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(a, b int) bool {
		if all[a].CreatedAt.Equal(all[b].CreatedAt) {
			return all[a].ID < all[b].ID
		}
		return all[a].CreatedAt.Before(all[b].CreatedAt)
	})
	return all, nil
}
