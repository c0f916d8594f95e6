package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service is an offering the agent sells (insurance product, loan brokerage, ...)
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceFilters filters the service catalog listing
type ServiceFilters struct {
	Active *bool
}

type ServiceUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (u *ServiceUpdate) Apply(service *Service) {
	if u.Name != nil {
		service.Name = *u.Name
	}
	if u.Description != nil {
		service.Description = u.Description
	}
	if u.IsActive != nil {
		service.IsActive = *u.IsActive
	}
}

type ServiceRepository interface {
	Create(ctx context.Context, service *Service) (*Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Service, error)
	List(ctx context.Context, filters ServiceFilters) ([]*Service, error)
	Update(ctx context.Context, service *Service) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
