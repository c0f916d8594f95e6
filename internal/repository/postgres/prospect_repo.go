package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const prospectColumns = `id, first_name, last_name, phone, profession, recommended_by, is_archived, created_at, updated_at`

// ProspectRepository implements domain.ProspectRepository using PostgreSQL
type ProspectRepository struct {
	db DBTX
}

// NewProspectRepository creates a new ProspectRepository
func NewProspectRepository(db DBTX) *ProspectRepository {
	return &ProspectRepository{db: db}
}

func scanProspect(row pgx.Row) (*domain.Prospect, error) {
	var p domain.Prospect
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Phone, &p.Profession, &p.RecommendedBy,
		&p.IsArchived, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new prospect
func (r *ProspectRepository) Create(ctx context.Context, prospect *domain.Prospect) (*domain.Prospect, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO prospects (first_name, last_name, phone, profession, recommended_by, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+prospectColumns,
		prospect.FirstName, prospect.LastName, prospect.Phone, prospect.Profession, prospect.RecommendedBy, prospect.IsArchived,
	)
	return scanProspect(row)
}

// GetByID retrieves a prospect by its ID
func (r *ProspectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prospect, error) {
	p, err := scanProspect(r.db.QueryRow(ctx, `SELECT `+prospectColumns+` FROM prospects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProspectNotFound
		}
		return nil, err
	}
	return p, nil
}

// List retrieves prospects, newest first
func (r *ProspectRepository) List(ctx context.Context, filters domain.ContactFilters) ([]*domain.Prospect, error) {
	where, args := contactListClause(filters, true)
	rows, err := r.db.Query(ctx, `SELECT `+prospectColumns+` FROM prospects`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prospects := make([]*domain.Prospect, 0)
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, rows.Err()
}

// Update overwrites the mutable fields of a prospect
func (r *ProspectRepository) Update(ctx context.Context, prospect *domain.Prospect) (*domain.Prospect, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE prospects
		SET first_name = $2, last_name = $3, phone = $4, profession = $5, recommended_by = $6,
		    is_archived = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+prospectColumns,
		prospect.ID, prospect.FirstName, prospect.LastName, prospect.Phone, prospect.Profession,
		prospect.RecommendedBy, prospect.IsArchived,
	)
	p, err := scanProspect(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProspectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a prospect
func (r *ProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProspectNotFound
	}
	return nil
}
