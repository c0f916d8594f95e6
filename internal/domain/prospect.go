package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Prospect is a contact that has not bought anything yet
type Prospect struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	Profession    *string   `json:"profession,omitempty"`
	RecommendedBy *string   `json:"recommendedBy,omitempty"`
	IsArchived    bool      `json:"isArchived"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProspectUpdate struct {
	FirstName     *string
	LastName      *string
	Phone         *string
	Profession    *string
	RecommendedBy *string
	IsArchived    *bool
}

func (u *ProspectUpdate) Apply(prospect *Prospect) {
	if u.FirstName != nil {
		prospect.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		prospect.LastName = *u.LastName
	}
	if u.Phone != nil {
		prospect.Phone = *u.Phone
	}
	if u.Profession != nil {
		prospect.Profession = u.Profession
	}
	if u.RecommendedBy != nil {
		prospect.RecommendedBy = u.RecommendedBy
	}
	if u.IsArchived != nil {
		prospect.IsArchived = *u.IsArchived
	}
}

type ProspectRepository interface {
	Create(ctx context.Context, prospect *Prospect) (*Prospect, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Prospect, error)
	List(ctx context.Context, filters ContactFilters) ([]*Prospect, error)
	Update(ctx context.Context, prospect *Prospect) (*Prospect, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
