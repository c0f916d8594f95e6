package service

import (
	"context"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
	"github.com/dafibh/mandataire/mandataire-backend/internal/websocket"
	"github.com/google/uuid"
)

// ProspectService handles prospect business logic
type ProspectService struct {
	prospectRepo   domain.ProspectRepository
	phoneRegion    string
	eventPublisher websocket.EventPublisher
}

// NewProspectService creates a new ProspectService. Local phone numbers are read in phoneRegion.
func NewProspectService(prospectRepo domain.ProspectRepository, phoneRegion string) *ProspectService {
	return &ProspectService{
		prospectRepo: prospectRepo,
		phoneRegion:  phoneRegion,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProspectService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProspectService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateProspectInput contains input for creating a prospect
type CreateProspectInput struct {
	FirstName     string
	LastName      string
	Phone         string
	Profession    *string
	RecommendedBy *string
}

// CreateProspect validates and records a new prospect
func (s *ProspectService) CreateProspect(ctx context.Context, input CreateProspectInput) (*domain.Prospect, error) {
	prospect := &domain.Prospect{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		Profession:    input.Profession,
		RecommendedBy: input.RecommendedBy,
	}
	if err := s.normalize(prospect); err != nil {
		return nil, err
	}

	created, err := s.prospectRepo.Create(ctx, prospect)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Created(websocket.EntityTypeProspect, created))
	return created, nil
}

// GetProspects lists prospects matching filters
func (s *ProspectService) GetProspects(ctx context.Context, filters domain.ContactFilters) ([]*domain.Prospect, error) {
	return s.prospectRepo.List(ctx, filters)
}

// GetProspectByID retrieves a single prospect
func (s *ProspectService) GetProspectByID(ctx context.Context, id uuid.UUID) (*domain.Prospect, error) {
	return s.prospectRepo.GetByID(ctx, id)
}

// UpdateProspect applies a partial update
func (s *ProspectService) UpdateProspect(ctx context.Context, id uuid.UUID, update domain.ProspectUpdate) (*domain.Prospect, error) {
	existing, err := s.prospectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(existing)
	if err := s.normalize(existing); err != nil {
		return nil, err
	}

	updated, err := s.prospectRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.publishEvent(websocket.Updated(websocket.EntityTypeProspect, updated))
	return updated, nil
}

// DeleteProspect permanently removes a prospect
func (s *ProspectService) DeleteProspect(ctx context.Context, id uuid.UUID) error {
	if err := s.prospectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(websocket.Deleted(websocket.EntityTypeProspect, id))
	return nil
}

func (s *ProspectService) normalize(p *domain.Prospect) error {
	var err error
	if p.FirstName, err = validateName(p.FirstName); err != nil {
		return err
	}
	if p.LastName, err = validateName(p.LastName); err != nil {
		return err
	}
	if p.Phone, err = normalizeRequiredPhone(p.Phone, s.phoneRegion); err != nil {
		return err
	}
	p.Profession = util.TrimOptional(p.Profession)
	p.RecommendedBy = util.TrimOptional(p.RecommendedBy)
	return nil
}
