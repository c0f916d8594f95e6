package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseView(t *testing.T) {
	tests := []struct {
		raw     string
		want    View
		wantErr error
	}{
		{"", ViewMonthly, nil},
		{"monthly", ViewMonthly, nil},
		{"YEARLY", ViewYearly, nil},
		{" yearly ", ViewYearly, nil},
		{"weekly", "", ErrInvalidView},
	}

	for _, tt := range tests {
		got, err := ParseView(tt.raw)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseView(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseView(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestResolvePeriod_Monthly(t *testing.T) {
	p, err := ResolvePeriod(ViewMonthly, 2024, 2, time.UTC)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}

	if len(p.Labels) != 29 {
		t.Fatalf("len(Labels) = %d, want 29", len(p.Labels))
	}
	if p.Labels[0] != "2024-02-01" || p.Labels[28] != "2024-02-29" {
		t.Errorf("Labels = [%s .. %s], want [2024-02-01 .. 2024-02-29]", p.Labels[0], p.Labels[28])
	}
	if want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !p.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", p.Start, want)
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !p.End.Equal(want) {
		t.Errorf("End = %v, want %v", p.End, want)
	}
}

func TestResolvePeriod_December(t *testing.T) {
	p, err := ResolvePeriod(ViewMonthly, 2023, 12, time.UTC)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !p.End.Equal(want) {
		t.Errorf("End = %v, want %v", p.End, want)
	}
	if len(p.Labels) != 31 {
		t.Errorf("len(Labels) = %d, want 31", len(p.Labels))
	}
}

func TestResolvePeriod_Yearly(t *testing.T) {
	// The month is ignored for the yearly view, even when out of range
	p, err := ResolvePeriod(ViewYearly, 2024, 13, time.UTC)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}

	if len(p.Labels) != 12 {
		t.Fatalf("len(Labels) = %d, want 12", len(p.Labels))
	}
	if p.Labels[0] != "2024-01" || p.Labels[11] != "2024-12" {
		t.Errorf("Labels = [%s .. %s], want [2024-01 .. 2024-12]", p.Labels[0], p.Labels[11])
	}
	if p.Month != 0 {
		t.Errorf("Month = %d, want 0", p.Month)
	}
	if want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); !p.End.Equal(want) {
		t.Errorf("End = %v, want %v", p.End, want)
	}
}

func TestResolvePeriod_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		view    View
		year    int
		month   int
		wantErr error
	}{
		{"month zero", ViewMonthly, 2024, 0, ErrInvalidMonth},
		{"month thirteen", ViewMonthly, 2024, 13, ErrInvalidMonth},
		{"year too small", ViewMonthly, 1999, 1, ErrInvalidYear},
		{"year too large", ViewYearly, 2101, 1, ErrInvalidYear},
		{"unknown view", View("weekly"), 2024, 1, ErrInvalidView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(tt.view, tt.year, tt.month, time.UTC)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolvePeriod error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriodBucketIndex(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	p, err := ResolvePeriod(ViewMonthly, 2024, 3, paris)
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}

	tests := []struct {
		name   string
		at     time.Time
		want   int
		wantIn bool
	}{
		{"first instant", p.Start, 0, true},
		{"late evening UTC is next day in Paris", time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC), 4, true},
		{"last day", time.Date(2024, 3, 31, 12, 0, 0, 0, paris), 30, true},
		{"end is exclusive", p.End, 0, false},
		{"before start", p.Start.Add(-time.Second), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, in := p.BucketIndex(tt.at)
			if in != tt.wantIn || got != tt.want {
				t.Errorf("BucketIndex(%v) = (%d, %v), want (%d, %v)", tt.at, got, in, tt.want, tt.wantIn)
			}
		})
	}
}
