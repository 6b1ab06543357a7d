package domain

import (
	"testing"

	"github.com/sahayahq/sahaya/internal/config"
)

func TestTipMath(t *testing.T) {
	cases := []struct {
		amount     int64
		tipPercent int
		wantTip    int64
		wantTotal  int64
	}{
		{500, 18, 90, 590},
		{1000, 18, 180, 1180},
		{300, 18, 54, 354},
		{500, 0, 0, 500},
		{500, 5, 25, 525},
		{500, 10, 50, 550},
		{500, 15, 75, 575},
		{333, 15, 50, 383},
	}

	for _, tc := range cases {
		i := Intent{Amount: tc.amount, TipPercent: tc.tipPercent}
		if got := i.Tip(); got != tc.wantTip {
			t.Fatalf("Tip(%d, %d%%) = %d, want %d", tc.amount, tc.tipPercent, got, tc.wantTip)
		}
		if got := i.Total(); got != tc.wantTotal {
			t.Fatalf("Total(%d, %d%%) = %d, want %d", tc.amount, tc.tipPercent, got, tc.wantTotal)
		}
	}
}

func TestTotalMinor(t *testing.T) {
	i := Intent{Amount: 500, TipPercent: 18}
	if got := i.TotalMinor(); got != 59000 {
		t.Fatalf("TotalMinor = %d, want 59000", got)
	}
}

func TestValidateDonor(t *testing.T) {
	valid := DonorInfo{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	if err := ValidateDonor(valid); err != nil {
		t.Fatalf("valid donor rejected: %v", err)
	}

	cases := []struct {
		name  string
		donor DonorInfo
		want  error
	}{
		{"empty name", DonorInfo{Name: " ", Email: "a@b.com", Phone: "9876543210"}, ErrInvalidName},
		{"empty email", DonorInfo{Name: "Asha", Email: "", Phone: "9876543210"}, ErrInvalidEmail},
		{"email without at", DonorInfo{Name: "Asha", Email: "asha.example.com", Phone: "9876543210"}, ErrInvalidEmail},
		{"short phone", DonorInfo{Name: "Asha", Email: "a@b.com", Phone: "12345"}, ErrInvalidPhone},
		{"long phone", DonorInfo{Name: "Asha", Email: "a@b.com", Phone: "98765432100"}, ErrInvalidPhone},
		{"alpha phone", DonorInfo{Name: "Asha", Email: "a@b.com", Phone: "98765abcde"}, ErrInvalidPhone},
	}
	for _, tc := range cases {
		if err := ValidateDonor(tc.donor); err != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestValidateIntent(t *testing.T) {
	cfg := config.DefaultDonationConfig()

	if err := ValidateIntent(Intent{Amount: 100, TipPercent: 18}, cfg); err != nil {
		t.Fatalf("minimum amount rejected: %v", err)
	}
	if err := ValidateIntent(Intent{Amount: 99, TipPercent: 18}, cfg); err != ErrInvalidAmount {
		t.Fatalf("below minimum: got %v, want ErrInvalidAmount", err)
	}
	if err := ValidateIntent(Intent{Amount: 500, TipPercent: 7}, cfg); err != ErrInvalidTipPercent {
		t.Fatalf("unlisted tip percent: got %v, want ErrInvalidTipPercent", err)
	}
	for _, pct := range cfg.TipPercents {
		if err := ValidateIntent(Intent{Amount: 500, TipPercent: pct}, cfg); err != nil {
			t.Fatalf("tip percent %d rejected: %v", pct, err)
		}
	}
}
