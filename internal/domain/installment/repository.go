package installment

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/types"
)

// Repository defines the interface for installment persistence
type Repository interface {
	Create(ctx context.Context, i *Installment) error
	// CreateBulk inserts all rows or none
	CreateBulk(ctx context.Context, items []*Installment) error
	Get(ctx context.Context, id string) (*Installment, error)
	Update(ctx context.Context, i *Installment) error
	// Delete removes the row permanently whatever its status
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.InstallmentFilter) ([]*Installment, error)
	Count(ctx context.Context, filter *types.InstallmentFilter) (int, error)
	// ListByContract returns every installment of a contract ordered by creation time
	ListByContract(ctx context.Context, contractID string) ([]*Installment, error)
}
