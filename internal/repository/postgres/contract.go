package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

var contractSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"start_date": "start_date",
	"price":      "price",
}

type contractRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewContractRepository(db *postgres.DB, logger *logger.Logger) contract.Repository {
	return &contractRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contractRepository) Create(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (
			id, tenant_id, contract_type, home_id, guest_id, reference, start_date,
			duration_months, pay_cycle_months, price, deposit, contract_status, note,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :contract_type, :home_id, :guest_id, :reference, :start_date,
			:duration_months, :pay_cycle_months, :price, :deposit, :contract_status, :note,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating contract",
		"contract_id", c.ID,
		"tenant_id", c.TenantID,
		"contract_type", c.ContractType,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return wrapDBError(err, "Contract", "create")
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	query := `
		SELECT * FROM contracts
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, wrapDBError(err, "Contract", "get")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, wrapDBError(err, "Contract", "get")
		}
		return nil, notFound("Contract", id)
	}

	var c contract.Contract
	if err := rows.StructScan(&c); err != nil {
		return nil, wrapDBError(err, "Contract", "scan")
	}
	return &c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET
			home_id = :home_id,
			guest_id = :guest_id,
			reference = :reference,
			contract_status = :contract_status,
			note = :note,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating contract",
		"contract_id", c.ID,
		"tenant_id", c.TenantID,
	)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return wrapDBError(err, "Contract", "update")
	}
	if n, err := result.RowsAffected(); err != nil {
		return wrapDBError(err, "Contract", "update")
	} else if n == 0 {
		return notFound("Contract", c.ID)
	}
	return nil
}

func (r *contractRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE contracts
		SET status = :deleted, updated_at = NOW(), updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":         id,
		"deleted":    types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"tenant_id":  types.GetTenantID(ctx),
		"status":     types.StatusPublished,
	}

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, params)
	if err != nil {
		return wrapDBError(err, "Contract", "delete")
	}
	if n, err := result.RowsAffected(); err != nil {
		return wrapDBError(err, "Contract", "delete")
	} else if n == 0 {
		return notFound("Contract", id)
	}
	return nil
}

func (r *contractRepository) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	q := r.buildFilter(ctx, filter)
	query := fmt.Sprintf("SELECT * FROM contracts %s%s", q.where(), q.page(filter, contractSortColumns, "created_at"))

	rows, err := r.db.NamedQueryContext(ctx, query, q.params)
	if err != nil {
		return nil, wrapDBError(err, "Contract", "list")
	}
	defer rows.Close()

	var contracts []*contract.Contract
	for rows.Next() {
		var c contract.Contract
		if err := rows.StructScan(&c); err != nil {
			return nil, wrapDBError(err, "Contract", "scan")
		}
		contracts = append(contracts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "Contract", "list")
	}
	return contracts, nil
}

func (r *contractRepository) Count(ctx context.Context, filter *types.ContractFilter) (int, error) {
	q := r.buildFilter(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM contracts %s", q.where())

	rows, err := r.db.NamedQueryContext(ctx, query, q.params)
	if err != nil {
		return 0, wrapDBError(err, "Contract", "count")
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, wrapDBError(err, "Contract", "count")
		}
	}
	return count, rows.Err()
}

func (r *contractRepository) buildFilter(ctx context.Context, filter *types.ContractFilter) *filterQuery {
	q := newFilterQuery(filter, types.GetTenantID(ctx))

	if len(filter.ContractIDs) > 0 {
		q.add("id = ANY(:contract_ids)", "contract_ids", pq.Array(filter.ContractIDs))
	}
	if len(filter.ContractTypes) > 0 {
		q.add("contract_type = ANY(:contract_types)", "contract_types",
			pq.Array(lo.Map(filter.ContractTypes, func(t types.ContractType, _ int) string { return string(t) })))
	}
	if len(filter.ContractStatuses) > 0 {
		q.add("contract_status = ANY(:contract_statuses)", "contract_statuses",
			pq.Array(lo.Map(filter.ContractStatuses, func(s types.ContractStatus, _ int) string { return string(s) })))
	}
	if filter.HomeID != "" {
		q.add("home_id = :home_id", "home_id", filter.HomeID)
	}
	if filter.GuestID != "" {
		q.add("guest_id = :guest_id", "guest_id", filter.GuestID)
	}
	return q
}
