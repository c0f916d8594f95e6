package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    ReportFormat
		wantErr error
	}{
		{"", ReportFormatXLSX, nil},
		{"xlsx", ReportFormatXLSX, nil},
		{"PDF", ReportFormatPDF, nil},
		{"csv", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		got, err := ParseReportFormat(tt.raw)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseReportFormat(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseReportFormat(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestReportFilename(t *testing.T) {
	monthly, err := ResolvePeriod(ViewMonthly, 2024, 3, time.UTC)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if got := ReportFilename(monthly, ReportFormatXLSX); got != "dashboard-2024-03.xlsx" {
		t.Errorf("ReportFilename(monthly) = %q", got)
	}

	yearly, err := ResolvePeriod(ViewYearly, 2024, 0, time.UTC)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if got := ReportFilename(yearly, ReportFormatPDF); got != "dashboard-2024.pdf" {
		t.Errorf("ReportFilename(yearly) = %q", got)
	}
}

func TestReportFormatContentType(t *testing.T) {
	if got := ReportFormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("PDF content type = %q", got)
	}
	if got := ReportFormatXLSX.ContentType(); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("XLSX content type = %q", got)
	}
}
