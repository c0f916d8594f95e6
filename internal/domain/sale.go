package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyEUR is the only currency the dashboard reports in
const CurrencyEUR = "EUR"

// Stored precision of the commission rate (NUMERIC(5,2)) and split ratio (NUMERIC(5,4))
const (
	RateDecimalPlaces  = 2
	SplitDecimalPlaces = 4
)

// Sale is a recorded "client service": a client bought a service, and the agent earns a commission on it
type Sale struct {
	ID                            uuid.UUID       `json:"id"`
	ClientID                      uuid.UUID       `json:"clientId"`
	ServiceID                     uuid.UUID       `json:"serviceId"`
	AmountCents                   int64           `json:"amountCents"`
	Currency                      string          `json:"currency"`
	OccurredAt                    time.Time       `json:"occurredAt"`
	Notes                         *string         `json:"notes,omitempty"`
	CommissionRatePercent         decimal.Decimal `json:"commissionRatePercent"`
	CommissionAmountCentsOverride *int64          `json:"commissionAmountCentsOverride"`
	IsSplit                       bool            `json:"isSplit"`
	SplitRatio                    decimal.Decimal `json:"splitRatio"`
	PartnerName                   *string         `json:"partnerName,omitempty"`
	CreatedAt                     time.Time       `json:"createdAt"`
	UpdatedAt                     time.Time       `json:"updatedAt"`
}

// CommissionCents returns the agent's commission for this sale
func (s *Sale) CommissionCents() int64 {
	return CommissionCents(s.AmountCents, s.CommissionRatePercent, s.CommissionAmountCentsOverride, s.SplitRatio)
}

// SaleView is a sale with its computed commission, as pushed on the change feed
type SaleView struct {
	*Sale
	CommissionCents int64 `json:"commissionCents"`
}

// NewSaleView wraps sale with its commission
func NewSaleView(sale *Sale) SaleView {
	return SaleView{Sale: sale, CommissionCents: sale.CommissionCents()}
}

// SaleFilter restricts a sale listing. Nil pointers and zero times mean "no restriction".
// Start is inclusive; End is exclusive.
type SaleFilter struct {
	Start     time.Time
	End       time.Time
	ServiceID *uuid.UUID
	ClientID  *uuid.UUID
}

// SaleListFilters holds the record-store listing filters (From and To are both inclusive)
type SaleListFilters struct {
	ClientID  *uuid.UUID
	ServiceID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// SaleUpdate carries a partial update. Nil fields are left unchanged.
// ClearOverride resets the commission override so the rate applies again.
type SaleUpdate struct {
	ClientID                      *uuid.UUID
	ServiceID                     *uuid.UUID
	AmountCents                   *int64
	Currency                      *string
	OccurredAt                    *time.Time
	Notes                         *string
	CommissionRatePercent         *decimal.Decimal
	CommissionAmountCentsOverride *int64
	ClearOverride                 bool
	IsSplit                       *bool
	SplitRatio                    *decimal.Decimal
	PartnerName                   *string
}

// Apply copies the set fields of the update onto sale
func (u *SaleUpdate) Apply(sale *Sale) {
	if u.ClientID != nil {
		sale.ClientID = *u.ClientID
	}
	if u.ServiceID != nil {
		sale.ServiceID = *u.ServiceID
	}
	if u.AmountCents != nil {
		sale.AmountCents = *u.AmountCents
	}
	if u.Currency != nil {
		sale.Currency = *u.Currency
	}
	if u.OccurredAt != nil {
		sale.OccurredAt = *u.OccurredAt
	}
	if u.Notes != nil {
		sale.Notes = u.Notes
	}
	if u.CommissionRatePercent != nil {
		sale.CommissionRatePercent = *u.CommissionRatePercent
	}
	if u.ClearOverride {
		sale.CommissionAmountCentsOverride = nil
	} else if u.CommissionAmountCentsOverride != nil {
		override := *u.CommissionAmountCentsOverride
		sale.CommissionAmountCentsOverride = &override
	}
	if u.IsSplit != nil {
		sale.IsSplit = *u.IsSplit
	}
	if u.SplitRatio != nil {
		sale.SplitRatio = *u.SplitRatio
	}
	if u.PartnerName != nil {
		sale.PartnerName = u.PartnerName
	}
}

// Validate checks the stored invariants of a sale
func (s *Sale) Validate() error {
	if s.AmountCents < 0 {
		return ErrInvalidAmount
	}
	if len(s.Currency) != 3 {
		return ErrInvalidCurrency
	}
	if s.OccurredAt.IsZero() {
		return ErrOccurredAtNeeded
	}
	if s.CommissionRatePercent.IsNegative() || s.CommissionRatePercent.GreaterThan(hundred) ||
		!s.CommissionRatePercent.Equal(s.CommissionRatePercent.Round(RateDecimalPlaces)) {
		return ErrInvalidRate
	}
	if s.CommissionAmountCentsOverride != nil && *s.CommissionAmountCentsOverride < 0 {
		return ErrInvalidOverride
	}
	if s.SplitRatio.IsNegative() || s.SplitRatio.GreaterThan(decimal.NewFromInt(1)) ||
		!s.SplitRatio.Equal(s.SplitRatio.Round(SplitDecimalPlaces)) {
		return ErrInvalidSplit
	}
	return nil
}

// SaleRepository persists sales in the record store
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) (*Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	List(ctx context.Context, filters SaleListFilters) ([]*Sale, error)
	ListInRange(ctx context.Context, filter SaleFilter) ([]*Sale, error)
	Update(ctx context.Context, sale *Sale) (*Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
