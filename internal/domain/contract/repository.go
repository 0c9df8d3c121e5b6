package contract

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/types"
)

// Repository defines the interface for contract persistence
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	Update(ctx context.Context, c *Contract) error
	// Delete archives the contract; its installments are left in place
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *types.ContractFilter) ([]*Contract, error)
	Count(ctx context.Context, filter *types.ContractFilter) (int, error)
}
