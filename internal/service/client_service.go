package service

import (
	"context"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/google/uuid"
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo     domain.ClientRepository
	phoneRegion    string
	eventPublisher websocket.EventPublisher
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo domain.ClientRepository, phoneRegion string) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		phoneRegion: phoneRegion,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ClientService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ClientService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateClientInput contains input for creating a client
type CreateClientInput struct {
	FirstName     string
	LastName      string
	Phone         *string
	Profession    *string
	RecommendedBy *string
	Notes         *string
}

// CreateClient validates and records a new client
func (s *ClientService) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		Profession:    input.Profession,
		RecommendedBy: input.RecommendedBy,
		Notes:         input.Notes,
	}
	if err := s.normalize(client); err != nil {
		return nil, err
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Created(websocket.EntityTypeClient, created))
	return created, nil
}

// GetClients lists clients matching filters
func (s *ClientService) GetClients(ctx context.Context, filters domain.ContactFilters) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx, filters)
}

// GetClientByID retrieves a single client
func (s *ClientService) GetClientByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

// UpdateClient applies a partial update
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, update domain.ClientUpdate) (*domain.Client, error) {
	existing, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(existing)
	if err := s.normalize(existing); err != nil {
		return nil, err
	}

	updated, err := s.clientRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Updated(websocket.EntityTypeClient, updated))
	return updated, nil
}

// DeleteClient permanently removes a client. Its sales stay and drop out of the client breakdown.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(websocket.Deleted(websocket.EntityTypeClient, id))
	return nil
}

func (s *ClientService) normalize(c *domain.Client) error {
	var err error
	if c.FirstName, err = validateName(c.FirstName); err != nil {
		return err
	}
	if c.LastName, err = validateName(c.LastName); err != nil {
		return err
	}
	if c.Phone, err = normalizeOptionalPhone(c.Phone, s.phoneRegion); err != nil {
		return err
	}
	c.Profession = util.TrimOptional(c.Profession)
	c.RecommendedBy = util.TrimOptional(c.RecommendedBy)
	c.Notes = util.TrimOptional(c.Notes)
	return nil
}
