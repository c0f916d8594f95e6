package report

import (
	"fmt"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Synthèse"
	sheetServices = "Par service"
	sheetClients  = "Par client"
	sheetSeries   = "Évolution"
)

var euroFormat = `#,##0.00 "€"`

// RenderXLSX renders a summary as a workbook with one sheet per dashboard section
func RenderXLSX(period domain.Period, summary *domain.DashboardSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetServices, sheetClients, sheetSeries} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &euroFormat})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, header: headerStyle, money: moneyStyle}

	w.row(sheetSummary, 1, "Tableau de bord", PeriodTitle(period))
	w.row(sheetSummary, 3, "Chiffre d'affaires", euros(summary.TotalCents))
	w.row(sheetSummary, 4, "Commissions", euros(summary.TotalCommissionCents))
	w.row(sheetSummary, 5, "Devise", summary.Currency)
	w.styleHeader(sheetSummary, "A1", "B1")
	w.styleMoney(sheetSummary, "B3", "B4")

	w.row(sheetServices, 1, "Service", "Chiffre d'affaires", "Commissions")
	for i, b := range summary.BreakdownByService {
		w.row(sheetServices, i+2, b.ServiceName, euros(b.TotalCents), euros(b.CommissionCents))
	}
	w.table(sheetServices, len(summary.BreakdownByService))

	w.row(sheetClients, 1, "Client", "Chiffre d'affaires", "Commissions")
	for i, b := range summary.BreakdownByClient {
		w.row(sheetClients, i+2, b.ClientName, euros(b.TotalCents), euros(b.CommissionCents))
	}
	w.table(sheetClients, len(summary.BreakdownByClient))

	w.row(sheetSeries, 1, "Période", "Chiffre d'affaires", "Commissions")
	for i, p := range summary.Points {
		w.row(sheetSeries, i+2, p.Period, euros(p.TotalCents), euros(p.CommissionCents))
	}
	w.table(sheetSeries, len(summary.Points))

	if w.err != nil {
		return nil, fmt.Errorf("write workbook: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the layout code stays linear
type sheetWriter struct {
	f      *excelize.File
	header int
	money  int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetSheetRow(sheet, fmt.Sprintf("A%d", n), &values)
}

func (w *sheetWriter) styleHeader(sheet, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, w.header)
}

func (w *sheetWriter) styleMoney(sheet, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, w.money)
}

// table styles a three-column table: bold header, money columns B and C
func (w *sheetWriter) table(sheet string, rows int) {
	w.styleHeader(sheet, "A1", "C1")
	if rows > 0 {
		w.styleMoney(sheet, "B2", fmt.Sprintf("C%d", rows+1))
	}
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(sheet, "A", "A", 32); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(sheet, "B", "C", 20)
}
