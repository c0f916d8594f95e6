package util

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    string
		wantErr bool
	}{
		{"national with spaces", "06 12 34 56 78", "FR", "+33612345678", false},
		{"national with dots", "01.42.68.53.00", "FR", "+33142685300", false},
		{"international ignores region", "+33 6 12 34 56 78", "US", "+33612345678", false},
		{"surrounding blanks", "  0612345678 ", "FR", "+33612345678", false},
		{"too short", "0612", "FR", "", true},
		{"not a number", "call me", "FR", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizePhone(%q) = %q, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTrimOptional(t *testing.T) {
	if got := TrimOptional(nil); got != nil {
		t.Errorf("TrimOptional(nil) = %q, want nil", *got)
	}

	blank := "   "
	if got := TrimOptional(&blank); got != nil {
		t.Errorf("TrimOptional(blank) = %q, want nil", *got)
	}

	padded := "  Alice  "
	got := TrimOptional(&padded)
	if got == nil || *got != "Alice" {
		t.Errorf("TrimOptional(padded) = %v, want \"Alice\"", got)
	}
}
