package service

import (
	"context"
	"strings"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService records client services (sales) and keeps their references valid
type SaleService struct {
	saleRepo       domain.SaleRepository
	clientRepo     domain.ClientRepository
	serviceRepo    domain.ServiceRepository
	eventPublisher websocket.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo domain.SaleRepository, clientRepo domain.ClientRepository, serviceRepo domain.ServiceRepository) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SaleService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SaleService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateSaleInput contains input for recording a sale.
// Nil optional fields take the defaults: EUR, 3.5 %, no override, not split, ratio 1.
type CreateSaleInput struct {
	ClientID                      uuid.UUID
	ServiceID                     uuid.UUID
	AmountCents                   int64
	Currency                      *string
	OccurredAt                    time.Time
	Notes                         *string
	CommissionRatePercent         *decimal.Decimal
	CommissionAmountCentsOverride *int64
	IsSplit                       *bool
	SplitRatio                    *decimal.Decimal
	PartnerName                   *string
}

// CreateSale validates and records a new sale
func (s *SaleService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	sale := &domain.Sale{
		ClientID:                      input.ClientID,
		ServiceID:                     input.ServiceID,
		AmountCents:                   input.AmountCents,
		Currency:                      domain.CurrencyEUR,
		OccurredAt:                    input.OccurredAt,
		Notes:                         input.Notes,
		CommissionRatePercent:         domain.DefaultCommissionRatePercent,
		CommissionAmountCentsOverride: input.CommissionAmountCentsOverride,
		SplitRatio:                    domain.DefaultSplitRatio,
		PartnerName:                   input.PartnerName,
	}
	if input.Currency != nil {
		sale.Currency = *input.Currency
	}
	if input.CommissionRatePercent != nil {
		sale.CommissionRatePercent = *input.CommissionRatePercent
	}
	if input.IsSplit != nil {
		sale.IsSplit = *input.IsSplit
	}
	if input.SplitRatio != nil {
		sale.SplitRatio = *input.SplitRatio
	}

	normalizeSale(sale)
	if err := sale.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, sale.ClientID, sale.ServiceID); err != nil {
		return nil, err
	}

	created, err := s.saleRepo.Create(ctx, sale)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Created(websocket.EntityTypeSale, domain.NewSaleView(created)))
	return created, nil
}

// GetSales lists sales matching filters, most recent first
func (s *SaleService) GetSales(ctx context.Context, filters domain.SaleListFilters) ([]*domain.Sale, error) {
	return s.saleRepo.List(ctx, filters)
}

// GetSaleByID retrieves a single sale
func (s *SaleService) GetSaleByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// UpdateSale applies a partial update. References are re-checked only when they change,
// so a sale whose client was deleted can still be edited.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, update domain.SaleUpdate) (*domain.Sale, error) {
	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousClient, previousService := existing.ClientID, existing.ServiceID

	update.Apply(existing)
	normalizeSale(existing)
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if existing.ClientID != previousClient {
		if _, err := s.clientRepo.GetByID(ctx, existing.ClientID); err != nil {
			return nil, err
		}
	}
	if existing.ServiceID != previousService {
		if _, err := s.serviceRepo.GetByID(ctx, existing.ServiceID); err != nil {
			return nil, err
		}
	}

	updated, err := s.saleRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Updated(websocket.EntityTypeSale, domain.NewSaleView(updated)))
	return updated, nil
}

// DeleteSale permanently removes a sale
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(websocket.Deleted(websocket.EntityTypeSale, id))
	return nil
}

func (s *SaleService) checkReferences(ctx context.Context, clientID, serviceID uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return err
	}
	return nil
}

func normalizeSale(sale *domain.Sale) {
	sale.Currency = strings.ToUpper(strings.TrimSpace(sale.Currency))
	sale.Notes = util.TrimOptional(sale.Notes)
	sale.PartnerName = util.TrimOptional(sale.PartnerName)
}
