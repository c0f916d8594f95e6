package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/report"
	"github.com/google/uuid"
)

// ExportService renders dashboard summaries as files and optionally archives them
type ExportService struct {
	dashboard *DashboardService
	store     domain.ReportStore
	urlTTL    time.Duration
	now       func() time.Time
}

// NewExportService creates a new ExportService. store may be nil when no archive is configured.
func NewExportService(dashboard *DashboardService, store domain.ReportStore, urlTTL time.Duration) *ExportService {
	return &ExportService{
		dashboard: dashboard,
		store:     store,
		urlTTL:    urlTTL,
		now:       time.Now,
	}
}

// ArchiveEnabled reports whether exports can be archived
func (s *ExportService) ArchiveEnabled() bool {
	return s.store != nil
}

// Export computes the summary for q and renders it in format
func (s *ExportService) Export(ctx context.Context, q domain.DashboardQuery, format domain.ReportFormat) (*domain.Report, error) {
	period, err := s.dashboard.ResolvePeriod(q)
	if err != nil {
		return nil, err
	}

	summary, err := s.dashboard.Aggregate(ctx, period, domain.SaleFilter{
		Start:     period.Start,
		End:       period.End,
		ServiceID: q.ServiceID,
		ClientID:  q.ClientID,
	})
	if err != nil {
		return nil, err
	}

	return report.Render(format, period, summary)
}

// Archive renders the export, uploads it and returns a temporary download link
func (s *ExportService) Archive(ctx context.Context, q domain.DashboardQuery, format domain.ReportFormat) (*domain.ArchivedReport, error) {
	if s.store == nil {
		return nil, domain.ErrStorageDisabled
	}

	rendered, err := s.Export(ctx, q, format)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := path.Join("reports", now.Format("2006/01"), uuid.New().String()+"-"+rendered.Filename)
	if err := s.store.Upload(ctx, key, rendered.Data, rendered.ContentType); err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.urlTTL)
	if err != nil {
		return nil, err
	}

	return &domain.ArchivedReport{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.urlTTL),
	}, nil
}
