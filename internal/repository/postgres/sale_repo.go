package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `id, client_id, service_id, amount_cents, currency, occurred_at, notes,
	commission_rate_percent, commission_amount_cents_override, is_split, split_ratio, partner_name,
	created_at, updated_at`

// SaleRepository implements domain.SaleRepository using PostgreSQL
type SaleRepository struct {
	db DBTX
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db DBTX) *SaleRepository {
	return &SaleRepository{db: db}
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(&s.ID, &s.ClientID, &s.ServiceID, &s.AmountCents, &s.Currency, &s.OccurredAt, &s.Notes,
		&s.CommissionRatePercent, &s.CommissionAmountCentsOverride, &s.IsSplit, &s.SplitRatio, &s.PartnerName,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Sale, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// Create inserts a new sale
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO client_services (client_id, service_id, amount_cents, currency, occurred_at, notes,
			commission_rate_percent, commission_amount_cents_override, is_split, split_ratio, partner_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+saleColumns,
		sale.ClientID, sale.ServiceID, sale.AmountCents, sale.Currency, sale.OccurredAt, sale.Notes,
		sale.CommissionRatePercent, sale.CommissionAmountCentsOverride, sale.IsSplit, sale.SplitRatio, sale.PartnerName,
	)
	created, err := scanSale(row)
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a sale by its ID
func (r *SaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM client_services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves sales, most recent first
func (r *SaleRepository) List(ctx context.Context, filters domain.SaleListFilters) ([]*domain.Sale, error) {
	where, args := saleListClause(filters)
	return r.query(ctx, `SELECT `+saleColumns+` FROM client_services`+where+` ORDER BY occurred_at DESC, id`, args...)
}

// ListInRange retrieves the sales matching a dashboard filter, oldest first
func (r *SaleRepository) ListInRange(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	where, args := saleFilterClause(filter)
	sales, err := r.query(ctx, `SELECT `+saleColumns+` FROM client_services`+where+` ORDER BY occurred_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales in range: %w", err)
	}
	return sales, nil
}

// Update overwrites the mutable fields of a sale
func (r *SaleRepository) Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE client_services
		SET client_id = $2, service_id = $3, amount_cents = $4, currency = $5, occurred_at = $6, notes = $7,
		    commission_rate_percent = $8, commission_amount_cents_override = $9, is_split = $10,
		    split_ratio = $11, partner_name = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING `+saleColumns,
		sale.ID, sale.ClientID, sale.ServiceID, sale.AmountCents, sale.Currency, sale.OccurredAt, sale.Notes,
		sale.CommissionRatePercent, sale.CommissionAmountCentsOverride, sale.IsSplit, sale.SplitRatio, sale.PartnerName,
	)
	updated, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a sale
func (r *SaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM client_services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}
