// Package report renders dashboard summaries as downloadable XLSX and PDF files.
package report

import (
	"fmt"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// euros converts cents to a euro amount
func euros(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// FormatEuros formats cents the French way, e.g. 123456 -> "1 234,56 €"
func FormatEuros(cents int64) string {
	return printer.Sprintf("%.2f €", euros(cents))
}

// PeriodTitle names a period in French, e.g. "mars 2024" or "année 2024"
func PeriodTitle(p domain.Period) string {
	if p.View == domain.ViewYearly {
		return fmt.Sprintf("année %d", p.Year)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// pointLabel renders a series label: the day of month, or the month name
func pointLabel(p domain.Period, index int) string {
	if p.View == domain.ViewYearly {
		return monthNames[index]
	}
	return fmt.Sprintf("%02d/%02d", index+1, p.Month)
}
