package report

import "github.com/dafibh/mandataire/mandataire-backend/internal/domain"

// Render renders summary in the requested format
func Render(format domain.ReportFormat, period domain.Period, summary *domain.DashboardSummary) (*domain.Report, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case domain.ReportFormatPDF:
		data, err = RenderPDF(period, summary)
	case domain.ReportFormatXLSX:
		data, err = RenderXLSX(period, summary)
	default:
		return nil, domain.ErrInvalidFormat
	}
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Filename:    domain.ReportFilename(period, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
