package report

import (
	"fmt"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 58, Blue: 96}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// RenderPDF renders a summary as an A4 document: totals, both breakdowns and the series table
func RenderPDF(period domain.Period, summary *domain.DashboardSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tableau de bord "+PeriodTitle(period), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(summary))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow("Par service"))
	m.AddRows(tableHeaderRow("Service"))
	for _, b := range summary.BreakdownByService {
		m.AddRows(tableRow(b.ServiceName, b.TotalCents, b.CommissionCents))
	}
	if len(summary.BreakdownByService) == 0 {
		m.AddRows(emptyRow())
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow("Par client"))
	m.AddRows(tableHeaderRow("Client"))
	for _, b := range summary.BreakdownByClient {
		m.AddRows(tableRow(b.ClientName, b.TotalCents, b.CommissionCents))
	}
	if len(summary.BreakdownByClient) == 0 {
		m.AddRows(emptyRow())
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow("Évolution"))
	m.AddRows(tableHeaderRow("Période"))
	for i, p := range summary.Points {
		m.AddRows(tableRow(pointLabel(period, i), p.TotalCents, p.CommissionCents))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(period domain.Period) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New("Tableau de bord", props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New(PeriodTitle(period), props.Text{
			Size: 11, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}

func totalsRow(summary *domain.DashboardSummary) core.Row {
	cell := func(label string, cents int64) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 2}),
			text.New(FormatEuros(cents), props.Text{Style: fontstyle.Bold, Size: 13, Top: 7}),
		)
	}
	return row.New(16).Add(
		cell("Chiffre d'affaires", summary.TotalCents),
		cell("Commissions", summary.TotalCommissionCents),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
	})))
}

func tableHeaderRow(first string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h(first, 6, align.Left),
		h("Chiffre d'affaires", 3, align.Right),
		h("Commissions", 3, align.Right),
	)
}

func tableRow(label string, totalCents, commissionCents int64) core.Row {
	return row.New(5).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 8})),
		col.New(3).Add(text.New(FormatEuros(totalCents), props.Text{Size: 8, Align: align.Right})),
		col.New(3).Add(text.New(FormatEuros(commissionCents), props.Text{Size: 8, Align: align.Right})),
	)
}

func emptyRow() core.Row {
	return row.New(5).Add(col.New(12).Add(text.New("Aucune vente sur la période", props.Text{
		Size: 8, Color: colorGray,
	})))
}
