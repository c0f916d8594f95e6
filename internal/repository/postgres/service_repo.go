package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceColumns = `id, name, description, is_active, created_at, updated_at`

// ServiceRepository implements domain.ServiceRepository using PostgreSQL
type ServiceRepository struct {
	db DBTX
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func collectServices(rows pgx.Rows) ([]*domain.Service, error) {
	defer rows.Close()
	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// Create inserts a new service
func (r *ServiceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO services (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+serviceColumns,
		service.Name, service.Description, service.IsActive,
	)
	return scanService(row)
}

// GetByID retrieves a service by its ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	s, err := scanService(r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetByIDs retrieves the services whose ID is in ids. Unknown IDs are skipped.
func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectServices(rows)
}

// List retrieves the catalog ordered by name
func (r *ServiceRepository) List(ctx context.Context, filters domain.ServiceFilters) ([]*domain.Service, error) {
	where, args := serviceListClause(filters)
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services`+where+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	return collectServices(rows)
}

// Update overwrites the mutable fields of a service
func (r *ServiceRepository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE services
		SET name = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+serviceColumns,
		service.ID, service.Name, service.Description, service.IsActive,
	)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return s, nil
}

// Delete removes a service. Sales referencing it are kept and become dangling.
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}
