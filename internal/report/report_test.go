package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func marchSummary(t *testing.T) (domain.Period, *domain.DashboardSummary) {
	t.Helper()

	period, err := domain.ResolvePeriod(domain.ViewMonthly, 2024, 3, time.UTC)
	require.NoError(t, err)

	points := make([]domain.SeriesPoint, len(period.Labels))
	for i, label := range period.Labels {
		points[i] = domain.SeriesPoint{Period: label}
	}
	points[4] = domain.SeriesPoint{Period: period.Labels[4], TotalCents: 10000, CommissionCents: 350}
	points[19] = domain.SeriesPoint{Period: period.Labels[19], TotalCents: 20000, CommissionCents: 250}

	return period, &domain.DashboardSummary{
		TotalCents:           30000,
		TotalCommissionCents: 600,
		Currency:             domain.CurrencyEUR,
		BreakdownByService: []domain.ServiceBreakdown{
			{ServiceID: uuid.New(), ServiceName: "Assurance vie", TotalCents: 20000, CommissionCents: 250},
			{ServiceID: uuid.New(), ServiceName: "Prévoyance", TotalCents: 10000, CommissionCents: 350},
		},
		BreakdownByClient: []domain.ClientBreakdown{
			{ClientID: uuid.New(), ClientName: "Claire Durand", TotalCents: 30000, CommissionCents: 600},
		},
		Points: points,
	}
}

func TestFormatEuros(t *testing.T) {
	got := FormatEuros(12345)
	assert.Contains(t, got, "123,45")
	assert.Contains(t, got, "€")

	assert.Contains(t, FormatEuros(123456), "234,56")
	assert.Contains(t, FormatEuros(0), "0,00")
}

func TestPeriodTitle(t *testing.T) {
	monthly, err := domain.ResolvePeriod(domain.ViewMonthly, 2024, 8, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "août 2024", PeriodTitle(monthly))

	yearly, err := domain.ResolvePeriod(domain.ViewYearly, 2024, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "année 2024", PeriodTitle(yearly))
}

func TestPointLabel(t *testing.T) {
	monthly, err := domain.ResolvePeriod(domain.ViewMonthly, 2024, 3, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "05/03", pointLabel(monthly, 4))

	yearly, err := domain.ResolvePeriod(domain.ViewYearly, 2024, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "décembre", pointLabel(yearly, 11))
}

func TestRenderXLSX(t *testing.T) {
	period, summary := marchSummary(t)

	data, err := RenderXLSX(period, summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetServices, sheetClients, sheetSeries}, f.GetSheetList())

	title, err := f.GetCellValue(sheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tableau de bord", title)

	name, err := f.GetCellValue(sheetServices, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Assurance vie", name)

	client, err := f.GetCellValue(sheetClients, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Claire Durand", client)

	rows, err := f.GetRows(sheetSeries)
	require.NoError(t, err)
	assert.Len(t, rows, 1+31)
	assert.Equal(t, "2024-03-05", rows[5][0])
}

func TestRenderPDF(t *testing.T) {
	period, summary := marchSummary(t)

	data, err := RenderPDF(period, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRender(t *testing.T) {
	period, summary := marchSummary(t)

	report, err := Render(domain.ReportFormatXLSX, period, summary)
	require.NoError(t, err)
	assert.Equal(t, "dashboard-2024-03.xlsx", report.Filename)
	assert.Equal(t, domain.ReportFormatXLSX.ContentType(), report.ContentType)
	assert.NotEmpty(t, report.Data)

	_, err = Render(domain.ReportFormat("csv"), period, summary)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestRender_EmptySummary(t *testing.T) {
	period, err := domain.ResolvePeriod(domain.ViewYearly, 2024, 0, time.UTC)
	require.NoError(t, err)

	summary := &domain.DashboardSummary{
		Currency:           domain.CurrencyEUR,
		BreakdownByService: []domain.ServiceBreakdown{},
		BreakdownByClient:  []domain.ClientBreakdown{},
		Points:             make([]domain.SeriesPoint, 12),
	}

	report, err := Render(domain.ReportFormatPDF, period, summary)
	require.NoError(t, err)
	assert.Equal(t, "dashboard-2024.pdf", report.Filename)
	assert.True(t, bytes.HasPrefix(report.Data, []byte("%PDF")))
}
