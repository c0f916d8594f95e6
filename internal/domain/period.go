package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
)

// View selects the dashboard granularity
type View string

const (
	// ViewMonthly buckets the days of one month
	ViewMonthly View = "monthly"
	// ViewYearly buckets the months of one year
	ViewYearly View = "yearly"
)

// ParseView parses a view query value. An empty value selects the monthly view.
func ParseView(raw string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ViewMonthly:
		return ViewMonthly, nil
	case ViewYearly:
		return ViewYearly, nil
	default:
		return "", ErrInvalidView
	}
}

// Period is a half-open date range [Start, End) with one label per time-series bucket
type Period struct {
	View   View
	Year   int
	Month  int // zero for the yearly view
	Start  time.Time
	End    time.Time
	Labels []string
}

// ResolvePeriod turns a view, year and month into the range and bucket labels of the dashboard.
// The month is only read for the monthly view. Boundaries are midnights in loc.
func ResolvePeriod(view View, year, month int, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	if year < MinYear || year > MaxYear {
		return Period{}, ErrInvalidYear
	}

	switch view {
	case ViewYearly:
		labels := make([]string, 12)
		for m := 1; m <= 12; m++ {
			labels[m-1] = fmt.Sprintf("%04d-%02d", year, m)
		}
		return Period{
			View:   ViewYearly,
			Year:   year,
			Start:  util.StartOfYear(year, loc),
			End:    util.StartOfYear(year+1, loc),
			Labels: labels,
		}, nil

	case ViewMonthly:
		if month < 1 || month > 12 {
			return Period{}, ErrInvalidMonth
		}
		days := util.DaysInMonth(year, month)
		labels := make([]string, days)
		for d := 1; d <= days; d++ {
			labels[d-1] = fmt.Sprintf("%04d-%02d-%02d", year, month, d)
		}
		nextYear, nextMonth := util.NextMonth(year, month)
		return Period{
			View:   ViewMonthly,
			Year:   year,
			Month:  month,
			Start:  util.StartOfMonth(year, month, loc),
			End:    util.StartOfMonth(nextYear, nextMonth, loc),
			Labels: labels,
		}, nil

	default:
		return Period{}, ErrInvalidView
	}
}

// Contains reports whether t falls inside [Start, End)
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// BucketIndex returns the position in Labels of the bucket holding t.
// The calendar fields are read in the period's own location.
func (p Period) BucketIndex(t time.Time) (int, bool) {
	if !p.Contains(t) {
		return 0, false
	}
	local := t.In(p.Start.Location())
	if p.View == ViewYearly {
		return int(local.Month()) - 1, true
	}
	return local.Day() - 1, true
}
