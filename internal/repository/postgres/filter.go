package postgres

import (
	"fmt"
	"strings"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
)

// whereClause accumulates AND-ed predicates with positional arguments.
// It is built per query and never shared.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereClause) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// saleFilterClause composes the dashboard predicate: start <= occurred_at < end plus optional equality filters
func saleFilterClause(filter domain.SaleFilter) (string, []any) {
	var w whereClause
	if !filter.Start.IsZero() {
		w.add("occurred_at >= $%d", filter.Start)
	}
	if !filter.End.IsZero() {
		w.add("occurred_at < $%d", filter.End)
	}
	if filter.ServiceID != nil {
		w.add("service_id = $%d", *filter.ServiceID)
	}
	if filter.ClientID != nil {
		w.add("client_id = $%d", *filter.ClientID)
	}
	return w.sql(), w.args
}

// saleListClause composes the sales listing predicate (from and to are inclusive)
func saleListClause(filters domain.SaleListFilters) (string, []any) {
	var w whereClause
	if filters.ClientID != nil {
		w.add("client_id = $%d", *filters.ClientID)
	}
	if filters.ServiceID != nil {
		w.add("service_id = $%d", *filters.ServiceID)
	}
	if filters.From != nil {
		w.add("occurred_at >= $%d", *filters.From)
	}
	if filters.To != nil {
		w.add("occurred_at <= $%d", *filters.To)
	}
	return w.sql(), w.args
}

// contactListClause composes the prospect/client listing predicate
func contactListClause(filters domain.ContactFilters, requiredPhone bool) (string, []any) {
	var w whereClause
	if filters.Archived != nil {
		w.add("is_archived = $%d", *filters.Archived)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		phone := "COALESCE(phone, '')"
		if requiredPhone {
			phone = "phone"
		}
		w.args = append(w.args, likePattern(q))
		n := len(w.args)
		w.conds = append(w.conds, fmt.Sprintf(
			"(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR %[2]s ILIKE $%[1]d OR COALESCE(profession, '') ILIKE $%[1]d OR COALESCE(recommended_by, '') ILIKE $%[1]d)",
			n, phone,
		))
	}
	return w.sql(), w.args
}

// serviceListClause composes the service catalog predicate
func serviceListClause(filters domain.ServiceFilters) (string, []any) {
	var w whereClause
	if filters.Active != nil {
		w.add("is_active = $%d", *filters.Active)
	}
	return w.sql(), w.args
}
