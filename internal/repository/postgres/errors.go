package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
)

const pqUniqueViolation = "23505"

// wrapDBError marks driver errors so that handlers map them to a status code
func wrapDBError(err error, entity, op string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(map[string]any{"constraint": pqErr.Constraint}).
			Mark(ierr.ErrAlreadyExists)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}

	return ierr.WithError(err).
		WithMessage(fmt.Sprintf("failed to %s %s", op, strings.ToLower(entity))).
		WithHintf("Could not %s %s", op, strings.ToLower(entity)).
		Mark(ierr.ErrDatabase)
}

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s %s not found", strings.ToLower(entity), id).
		WithHintf("%s not found", entity).
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrNotFound)
}

// filterQuery accumulates WHERE conditions and named parameters
type filterQuery struct {
	conditions []string
	params     map[string]interface{}
}

func newFilterQuery(f types.BaseFilter, tenantID string) *filterQuery {
	q := &filterQuery{params: map[string]interface{}{}}
	q.add("tenant_id = :tenant_id", "tenant_id", tenantID)
	q.add("status = :status", "status", f.GetStatus())
	return q
}

func (q *filterQuery) add(condition, name string, value interface{}) {
	q.conditions = append(q.conditions, condition)
	q.params[name] = value
}

func (q *filterQuery) where() string {
	return "WHERE " + strings.Join(q.conditions, " AND ")
}

// page appends ORDER BY and LIMIT/OFFSET. sort must be a whitelisted column.
func (q *filterQuery) page(f types.BaseFilter, sortable map[string]string, fallback string) string {
	column, ok := sortable[f.GetSort()]
	if !ok {
		column = fallback
	}
	order := "DESC"
	if f.GetOrder() == types.OrderAsc {
		order = "ASC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s, created_at ASC, id ASC", column, order)
	if !f.IsUnlimited() {
		clause += " LIMIT :limit OFFSET :offset"
		q.params["limit"] = f.GetLimit()
		q.params["offset"] = f.GetOffset()
	}
	return clause
}
