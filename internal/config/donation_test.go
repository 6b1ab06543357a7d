package config

import "testing"

func TestDefaultDonationConfigIsValid(t *testing.T) {
	if err := validateDonationConfig(DefaultDonationConfig()); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestValidateDonationConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DonationConfig)
	}{
		{"no presets", func(c *DonationConfig) { c.PresetAmounts = nil }},
		{"no tip percents", func(c *DonationConfig) { c.TipPercents = nil }},
		{"zero min amount", func(c *DonationConfig) { c.MinAmount = 0 }},
		{"empty currency", func(c *DonationConfig) { c.Currency = "" }},
		{"default tip not offered", func(c *DonationConfig) { c.DefaultTipPercent = 7 }},
	}
	for _, tc := range cases {
		cfg := DefaultDonationConfig()
		tc.mutate(&cfg)
		if err := validateDonationConfig(cfg); err == nil {
			t.Fatalf("%s: config accepted", tc.name)
		}
	}
}

func TestStaticHolder(t *testing.T) {
	cfg := DefaultDonationConfig()
	cfg.MinAmount = 50
	holder := NewStaticDonationConfigHolder(cfg)
	if got := holder.Get().MinAmount; got != 50 {
		t.Fatalf("min amount = %d, want 50", got)
	}
}
