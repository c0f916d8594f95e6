package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         *string   `json:"phone,omitempty"`
	Profession    *string   `json:"profession,omitempty"`
	RecommendedBy *string   `json:"recommendedBy,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	IsArchived    bool      `json:"isArchived"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FullName returns "first last" with surrounding blanks removed
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ContactFilters filters prospect and client listings
type ContactFilters struct {
	Query    string
	Archived *bool
}

// ClientUpdate carries a partial update. Nil fields are left unchanged.
type ClientUpdate struct {
	FirstName     *string
	LastName      *string
	Phone         *string
	Profession    *string
	RecommendedBy *string
	Notes         *string
	IsArchived    *bool
}

// Apply copies the set fields of the update onto client
func (u *ClientUpdate) Apply(client *Client) {
	if u.FirstName != nil {
		client.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		client.LastName = *u.LastName
	}
	if u.Phone != nil {
		client.Phone = u.Phone
	}
	if u.Profession != nil {
		client.Profession = u.Profession
	}
	if u.RecommendedBy != nil {
		client.RecommendedBy = u.RecommendedBy
	}
	if u.Notes != nil {
		client.Notes = u.Notes
	}
	if u.IsArchived != nil {
		client.IsArchived = *u.IsArchived
	}
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) (*Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Client, error)
	List(ctx context.Context, filters ContactFilters) ([]*Client, error)
	Update(ctx context.Context, client *Client) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
