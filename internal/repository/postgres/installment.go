package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
)

var installmentSortColumns = map[string]string{
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"amount":     "amount",
}

const installmentInsert = `
	INSERT INTO installments (
		id, tenant_id, contract_id, amount, amount_received, due_date, period_start, period_end,
		installment_status, installment_type, note, idempotency_key,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :contract_id, :amount, :amount_received, :due_date, :period_start, :period_end,
		:installment_status, :installment_type, :note, :idempotency_key,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

type installmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInstallmentRepository(db *postgres.DB, logger *logger.Logger) installment.Repository {
	return &installmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *installmentRepository) Create(ctx context.Context, i *installment.Installment) error {
	r.logger.Debugw("creating installment",
		"installment_id", i.ID,
		"contract_id", i.ContractID,
		"tenant_id", i.TenantID,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, installmentInsert, i); err != nil {
		return wrapDBError(err, "Installment", "create")
	}
	return nil
}

func (r *installmentRepository) CreateBulk(ctx context.Context, items []*installment.Installment) error {
	if len(items) == 0 {
		return nil
	}

	r.logger.Debugw("creating installments in bulk",
		"count", len(items),
		"contract_id", items[0].ContractID,
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, installmentInsert, items); err != nil {
			return wrapDBError(err, "Installment", "create")
		}
		return nil
	})
}

func (r *installmentRepository) Get(ctx context.Context, id string) (*installment.Installment, error) {
	query := `
		SELECT * FROM installments
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
		return nil, wrapDBError(err, "Installment", "get")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, wrapDBError(err, "Installment", "get")
		}
		return nil, notFound("Installment", id)
	}

	var i installment.Installment
	if err := rows.StructScan(&i); err != nil {
		return nil, wrapDBError(err, "Installment", "scan")
	}
	return &i, nil
}

// Update writes the mutable columns. Type and contract are never updated.
func (r *installmentRepository) Update(ctx context.Context, i *installment.Installment) error {
	query := `
		UPDATE installments
		SET
			amount = :amount,
			amount_received = :amount_received,
			due_date = :due_date,
			period_start = :period_start,
			period_end = :period_end,
			installment_status = :installment_status,
			note = :note,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating installment",
		"installment_id", i.ID,
		"installment_status", i.InstallmentStatus,
	)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, i)
	if err != nil {
		return wrapDBError(err, "Installment", "update")
	}
	if n, err := result.RowsAffected(); err != nil {
		return wrapDBError(err, "Installment", "update")
	} else if n == 0 {
		return notFound("Installment", i.ID)
	}
	return nil
}

func (r *installmentRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM installments
		WHERE id = :id
		AND tenant_id = :tenant_id`

	params := map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
	}

	r.logger.Debugw("deleting installment", "installment_id", id)

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, params)
	if err != nil {
		return wrapDBError(err, "Installment", "delete")
	}
	if n, err := result.RowsAffected(); err != nil {
		return wrapDBError(err, "Installment", "delete")
	} else if n == 0 {
		return notFound("Installment", id)
	}
	return nil
}

func (r *installmentRepository) List(ctx context.Context, filter *types.InstallmentFilter) ([]*installment.Installment, error) {
	q := r.buildFilter(ctx, filter)
	query := fmt.Sprintf("SELECT * FROM installments %s%s", q.where(), q.page(filter, installmentSortColumns, "due_date"))
	return r.query(ctx, query, q.params)
}

func (r *installmentRepository) Count(ctx context.Context, filter *types.InstallmentFilter) (int, error) {
	q := r.buildFilter(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM installments %s", q.where())

	rows, err := r.db.NamedQueryContext(ctx, query, q.params)
	if err != nil {
		return 0, wrapDBError(err, "Installment", "count")
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, wrapDBError(err, "Installment", "count")
		}
	}
	return count, rows.Err()
}

func (r *installmentRepository) ListByContract(ctx context.Context, contractID string) ([]*installment.Installment, error) {
	query := `
		SELECT * FROM installments
		WHERE contract_id = :contract_id
		AND tenant_id = :tenant_id
		AND status = :status
		ORDER BY created_at ASC, id ASC`

	params := map[string]interface{}{
		"contract_id": contractID,
		"tenant_id":   types.GetTenantID(ctx),
		"status":      types.StatusPublished,
	}

	return r.query(ctx, query, params)
}

func (r *installmentRepository) query(ctx context.Context, query string, params map[string]interface{}) ([]*installment.Installment, error) {
	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, wrapDBError(err, "Installment", "list")
	}
	defer rows.Close()

	var items []*installment.Installment
	for rows.Next() {
		var i installment.Installment
		if err := rows.StructScan(&i); err != nil {
			return nil, wrapDBError(err, "Installment", "scan")
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "Installment", "list")
	}
	return items, nil
}

func (r *installmentRepository) buildFilter(ctx context.Context, filter *types.InstallmentFilter) *filterQuery {
	q := newFilterQuery(filter, types.GetTenantID(ctx))

	if len(filter.InstallmentIDs) > 0 {
		q.add("id = ANY(:installment_ids)", "installment_ids", pq.Array(filter.InstallmentIDs))
	}
	if len(filter.ContractIDs) > 0 {
		q.add("contract_id = ANY(:contract_ids)", "contract_ids", pq.Array(filter.ContractIDs))
	}
	if len(filter.Statuses) > 0 {
		q.add("installment_status = ANY(:installment_statuses)", "installment_statuses",
			pq.Array(lo.Map(filter.Statuses, func(s types.InstallmentStatus, _ int) int64 { return int64(s) })))
	}
	if len(filter.Types) > 0 {
		q.add("installment_type = ANY(:installment_types)", "installment_types",
			pq.Array(lo.Map(filter.Types, func(t types.InstallmentType, _ int) int64 { return int64(t) })))
	}
	if filter.DateRange.From != nil {
		q.add("due_date >= :due_from", "due_from", types.DateOf(*filter.DateRange.From))
	}
	if filter.DateRange.To != nil {
		q.add("due_date <= :due_to", "due_to", types.DateOf(*filter.DateRange.To))
	}
	if filter.DueBefore != nil {
		q.add("due_date < :due_before", "due_before", types.DateOf(*filter.DueBefore))
	}
	return q
}
