package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ReportFormat is the file format of a dashboard export
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ParseReportFormat parses the format query value. An empty value selects XLSX.
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch ReportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ReportFormatXLSX:
		return ReportFormatXLSX, nil
	case ReportFormatPDF:
		return ReportFormatPDF, nil
	default:
		return "", ErrInvalidFormat
	}
}

// ContentType returns the MIME type of the format
func (f ReportFormat) ContentType() string {
	if f == ReportFormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Report is a rendered dashboard export
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchivedReport points at an export stored in the report archive
type ArchivedReport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReportFilename builds the download name of an export, e.g. "dashboard-2024-03.xlsx"
func ReportFilename(p Period, format ReportFormat) string {
	if p.View == ViewYearly {
		return fmt.Sprintf("dashboard-%04d.%s", p.Year, format)
	}
	return fmt.Sprintf("dashboard-%04d-%02d.%s", p.Year, p.Month, format)
}

// ReportStore archives rendered exports and hands out temporary download links
type ReportStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
