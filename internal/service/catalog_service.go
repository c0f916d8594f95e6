package service

import (
	"context"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/google/uuid"
)

// CatalogService manages the services the agent sells
type CatalogService struct {
	serviceRepo    domain.ServiceRepository
	eventPublisher websocket.EventPublisher
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(serviceRepo domain.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CatalogService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CatalogService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateServiceInput contains input for creating a service. IsActive defaults to true.
type CreateServiceInput struct {
	Name        string
	Description *string
	IsActive    *bool
}

// CreateService validates and records a new service
func (s *CatalogService) CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	service := &domain.Service{
		Name:        name,
		Description: util.TrimOptional(input.Description),
		IsActive:    true,
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Created(websocket.EntityTypeService, created))
	return created, nil
}

// GetServices lists the catalog
func (s *CatalogService) GetServices(ctx context.Context, filters domain.ServiceFilters) ([]*domain.Service, error) {
	return s.serviceRepo.List(ctx, filters)
}

// GetServiceByID retrieves a single service
func (s *CatalogService) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

// UpdateService applies a partial update
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, update domain.ServiceUpdate) (*domain.Service, error) {
	existing, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(existing)
	if existing.Name, err = validateName(existing.Name); err != nil {
		return nil, err
	}
	existing.Description = util.TrimOptional(existing.Description)

	updated, err := s.serviceRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Updated(websocket.EntityTypeService, updated))
	return updated, nil
}

// DeleteService permanently removes a service. Its sales stay and drop out of the service breakdown.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(websocket.Deleted(websocket.EntityTypeService, id))
	return nil
}
