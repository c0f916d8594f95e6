package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const clientColumns = `id, first_name, last_name, phone, profession, recommended_by, notes, is_archived, created_at, updated_at`

// ClientRepository implements domain.ClientRepository using PostgreSQL
type ClientRepository struct {
	db DBTX
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Profession, &c.RecommendedBy,
		&c.Notes, &c.IsArchived, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]*domain.Client, error) {
	defer rows.Close()
	clients := make([]*domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO clients (first_name, last_name, phone, profession, recommended_by, notes, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+clientColumns,
		client.FirstName, client.LastName, client.Phone, client.Profession, client.RecommendedBy,
		client.Notes, client.IsArchived,
	)
	return scanClient(row)
}

// GetByID retrieves a client by its ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByIDs retrieves the clients whose ID is in ids. Unknown IDs are skipped.
func (r *ClientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Client, error) {
	if len(ids) == 0 {
		return []*domain.Client{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectClients(rows)
}

// List retrieves clients, newest first
func (r *ClientRepository) List(ctx context.Context, filters domain.ContactFilters) ([]*domain.Client, error) {
	where, args := contactListClause(filters, false)
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	return collectClients(rows)
}

// Update overwrites the mutable fields of a client
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE clients
		SET first_name = $2, last_name = $3, phone = $4, profession = $5, recommended_by = $6,
		    notes = $7, is_archived = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+clientColumns,
		client.ID, client.FirstName, client.LastName, client.Phone, client.Profession,
		client.RecommendedBy, client.Notes, client.IsArchived,
	)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a client. Sales referencing it are kept and become dangling.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
