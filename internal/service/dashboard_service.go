package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
)

// DashboardService computes the revenue dashboard from the record store
type DashboardService struct {
	snapshots domain.SnapshotReader
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService. Buckets and default dates use loc.
func NewDashboardService(snapshots domain.SnapshotReader, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		snapshots: snapshots,
		loc:       loc,
		now:       time.Now,
	}
}

// SetClock replaces the clock used for the default year and month
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// ResolvePeriod applies the query defaults (monthly view, current year and month) and resolves the period
func (s *DashboardService) ResolvePeriod(q domain.DashboardQuery) (domain.Period, error) {
	view := q.View
	if view == "" {
		view = domain.ViewMonthly
	}

	today := s.now().In(s.loc)
	year, month := today.Year(), int(today.Month())
	if q.Year != nil {
		year = *q.Year
	}
	if q.Month != nil {
		month = *q.Month
	}

	return domain.ResolvePeriod(view, year, month, s.loc)
}

// GetSummary returns the dashboard summary for a query
func (s *DashboardService) GetSummary(ctx context.Context, q domain.DashboardQuery) (*domain.DashboardSummary, error) {
	period, err := s.ResolvePeriod(q)
	if err != nil {
		return nil, err
	}

	return s.Aggregate(ctx, period, domain.SaleFilter{
		Start:     period.Start,
		End:       period.End,
		ServiceID: q.ServiceID,
		ClientID:  q.ClientID,
	})
}

// Aggregate reads the sales matching filter and their names from one snapshot and folds them into a summary.
// Store errors are returned as-is and no partial summary is produced.
func (s *DashboardService) Aggregate(ctx context.Context, period domain.Period, filter domain.SaleFilter) (*domain.DashboardSummary, error) {
	var (
		sales    []*domain.Sale
		services []*domain.Service
		clients  []*domain.Client
	)

	err := s.snapshots.ReadSnapshot(ctx, func(src domain.DashboardSource) error {
		var err error
		sales, err = src.ListSales(ctx, filter)
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}

		serviceIDs, clientIDs := referencedIDs(sales)
		services, err = src.GetServicesByIDs(ctx, serviceIDs)
		if err != nil {
			return fmt.Errorf("resolve services: %w", err)
		}
		clients, err = src.GetClientsByIDs(ctx, clientIDs)
		if err != nil {
			return fmt.Errorf("resolve clients: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summarize(period, sales, services, clients), nil
}

// referencedIDs returns the distinct service and client IDs of sales, in first-seen order
func referencedIDs(sales []*domain.Sale) (serviceIDs, clientIDs []uuid.UUID) {
	seenServices := make(map[uuid.UUID]struct{})
	seenClients := make(map[uuid.UUID]struct{})
	serviceIDs = make([]uuid.UUID, 0)
	clientIDs = make([]uuid.UUID, 0)

	for _, sale := range sales {
		if _, ok := seenServices[sale.ServiceID]; !ok {
			seenServices[sale.ServiceID] = struct{}{}
			serviceIDs = append(serviceIDs, sale.ServiceID)
		}
		if _, ok := seenClients[sale.ClientID]; !ok {
			seenClients[sale.ClientID] = struct{}{}
			clientIDs = append(clientIDs, sale.ClientID)
		}
	}
	return serviceIDs, clientIDs
}

type bucket struct {
	totalCents      int64
	commissionCents int64
}

func (b *bucket) add(amountCents, commissionCents int64) {
	b.totalCents += amountCents
	b.commissionCents += commissionCents
}

// summarize folds sales into totals, breakdowns and a zero-filled series.
// Sales whose service or client is unknown count in the totals and the series but get no breakdown row.
func summarize(period domain.Period, sales []*domain.Sale, services []*domain.Service, clients []*domain.Client) *domain.DashboardSummary {
	serviceNames := make(map[uuid.UUID]string, len(services))
	for _, svc := range services {
		serviceNames[svc.ID] = svc.Name
	}
	clientNames := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.FullName()
	}

	var total bucket
	series := make([]bucket, len(period.Labels))
	byService := make(map[uuid.UUID]*bucket)
	byClient := make(map[uuid.UUID]*bucket)

	for _, sale := range sales {
		idx, ok := period.BucketIndex(sale.OccurredAt)
		if !ok {
			continue
		}
		commission := sale.CommissionCents()

		total.add(sale.AmountCents, commission)
		series[idx].add(sale.AmountCents, commission)

		if _, known := serviceNames[sale.ServiceID]; known {
			if byService[sale.ServiceID] == nil {
				byService[sale.ServiceID] = &bucket{}
			}
			byService[sale.ServiceID].add(sale.AmountCents, commission)
		}
		if _, known := clientNames[sale.ClientID]; known {
			if byClient[sale.ClientID] == nil {
				byClient[sale.ClientID] = &bucket{}
			}
			byClient[sale.ClientID].add(sale.AmountCents, commission)
		}
	}

	summary := &domain.DashboardSummary{
		TotalCents:           total.totalCents,
		TotalCommissionCents: total.commissionCents,
		Currency:             domain.CurrencyEUR,
		BreakdownByService:   make([]domain.ServiceBreakdown, 0, len(byService)),
		BreakdownByClient:    make([]domain.ClientBreakdown, 0, len(byClient)),
		Points:               make([]domain.SeriesPoint, len(period.Labels)),
	}

	for id, b := range byService {
		summary.BreakdownByService = append(summary.BreakdownByService, domain.ServiceBreakdown{
			ServiceID:       id,
			ServiceName:     serviceNames[id],
			TotalCents:      b.totalCents,
			CommissionCents: b.commissionCents,
		})
	}
	sort.Slice(summary.BreakdownByService, func(i, j int) bool {
		a, b := summary.BreakdownByService[i], summary.BreakdownByService[j]
		return breakdownLess(a.TotalCents, b.TotalCents, a.ServiceName, b.ServiceName, a.ServiceID, b.ServiceID)
	})

	for id, b := range byClient {
		summary.BreakdownByClient = append(summary.BreakdownByClient, domain.ClientBreakdown{
			ClientID:        id,
			ClientName:      clientNames[id],
			TotalCents:      b.totalCents,
			CommissionCents: b.commissionCents,
		})
	}
	sort.Slice(summary.BreakdownByClient, func(i, j int) bool {
		a, b := summary.BreakdownByClient[i], summary.BreakdownByClient[j]
		return breakdownLess(a.TotalCents, b.TotalCents, a.ClientName, b.ClientName, a.ClientID, b.ClientID)
	})

	for i, label := range period.Labels {
		summary.Points[i] = domain.SeriesPoint{
			Period:          label,
			TotalCents:      series[i].totalCents,
			CommissionCents: series[i].commissionCents,
		}
	}

	return summary
}

// breakdownLess orders breakdown rows by total descending, then name, then ID
func breakdownLess(totalA, totalB int64, nameA, nameB string, idA, idB uuid.UUID) bool {
	if totalA != totalB {
		return totalA > totalB
	}
	if nameA != nameB {
		return nameA < nameB
	}
	return idA.String() < idB.String()
}
