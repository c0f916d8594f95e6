package domain

import (
	"context"

	"github.com/google/uuid"
)

// DashboardQuery is a normalised dashboard request.
// Nil Year/Month fall back to the current calendar date; nil filters mean "all".
type DashboardQuery struct {
	View      View
	Year      *int
	Month     *int
	ServiceID *uuid.UUID
	ClientID  *uuid.UUID
}

// DashboardSummary is the dashboard response. Every field is always present:
// empty breakdowns are empty slices and Points holds one entry per bucket.
type DashboardSummary struct {
	TotalCents           int64              `json:"totalCents"`
	TotalCommissionCents int64              `json:"totalCommissionCents"`
	Currency             string             `json:"currency"`
	BreakdownByService   []ServiceBreakdown `json:"breakdownByService"`
	BreakdownByClient    []ClientBreakdown  `json:"breakdownByClient"`
	Points               []SeriesPoint      `json:"points"`
}

// ServiceBreakdown aggregates the filtered sales of one service
type ServiceBreakdown struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	TotalCents      int64     `json:"totalCents"`
	CommissionCents int64     `json:"commissionCents"`
}

// ClientBreakdown aggregates the filtered sales of one client
type ClientBreakdown struct {
	ClientID        uuid.UUID `json:"clientId"`
	ClientName      string    `json:"clientName"`
	TotalCents      int64     `json:"totalCents"`
	CommissionCents int64     `json:"commissionCents"`
}

// SeriesPoint is one time-series bucket (a day or a month)
type SeriesPoint struct {
	Period          string `json:"period"`
	TotalCents      int64  `json:"totalCents"`
	CommissionCents int64  `json:"commissionCents"`
}

// DashboardSource is the read-only slice of the record store the dashboard consumes
type DashboardSource interface {
	ListSales(ctx context.Context, filter SaleFilter) ([]*Sale, error)
	GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]*Service, error)
	GetClientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Client, error)
}

// SnapshotReader runs fn against a DashboardSource that observes one consistent snapshot
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(src DashboardSource) error) error
}
