package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// SnapshotReader implements domain.SnapshotReader with a read-only repeatable-read transaction,
// so the sale list and the name lookups of one dashboard request see the same data.
type SnapshotReader struct {
	pool *pgxpool.Pool
}

// NewSnapshotReader creates a new SnapshotReader
func NewSnapshotReader(pool *pgxpool.Pool) *SnapshotReader {
	return &SnapshotReader{pool: pool}
}

// ReadSnapshot runs fn inside the snapshot transaction.
// fn must not retain src after it returns.
func (r *SnapshotReader) ReadSnapshot(ctx context.Context, fn func(src domain.DashboardSource) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn().Err(rbErr).Msg("Failed to roll back dashboard snapshot")
		}
	}()

	if err := fn(newTxSource(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// txSource serves dashboard reads from one transaction. pgx.Tx is not safe for concurrent use,
// so callers issue the queries sequentially.
type txSource struct {
	sales    *SaleRepository
	services *ServiceRepository
	clients  *ClientRepository
}

func newTxSource(tx pgx.Tx) *txSource {
	return &txSource{
		sales:    NewSaleRepository(tx),
		services: NewServiceRepository(tx),
		clients:  NewClientRepository(tx),
	}
}

func (s *txSource) ListSales(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	return s.sales.ListInRange(ctx, filter)
}

func (s *txSource) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	return s.services.GetByIDs(ctx, ids)
}

func (s *txSource) GetClientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Client, error) {
	return s.clients.GetByIDs(ctx, ids)
}
