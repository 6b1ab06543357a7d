package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DonationConfig controls the amounts a donor may pick.
type DonationConfig struct {
	PresetAmounts     []int64 `mapstructure:"presetAmounts"`
	TipPercents       []int   `mapstructure:"tipPercents"`
	DefaultTipPercent int     `mapstructure:"defaultTipPercent"`
	MinAmount         int64   `mapstructure:"minAmount"`
	Currency          string  `mapstructure:"currency"`
}

func DefaultDonationConfig() DonationConfig {
	return DonationConfig{
		PresetAmounts:     []int64{300, 500, 1000},
		TipPercents:       []int{0, 5, 10, 15, 18},
		DefaultTipPercent: 18,
		MinAmount:         100,
		Currency:          "INR",
	}
}

// DonationConfigHolder serves the current donation config and hot-reloads it
// when the backing file changes.
type DonationConfigHolder struct {
	current atomic.Value // holds DonationConfig
}

func NewDonationConfigHolder() (*DonationConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("donation")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/sahaya/config")
	v.AddConfigPath("/etc/sahaya")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SAHAYA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDonationConfig()
		v.SetDefault("donation.presetAmounts", defaults.PresetAmounts)
		v.SetDefault("donation.tipPercents", defaults.TipPercents)
		v.SetDefault("donation.defaultTipPercent", defaults.DefaultTipPercent)
		v.SetDefault("donation.minAmount", defaults.MinAmount)
		v.SetDefault("donation.currency", defaults.Currency)
	}

	var cfg DonationConfig
	if err := v.UnmarshalKey("donation", &cfg); err != nil {
		return nil, err
	}
	if err := validateDonationConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DonationConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DonationConfig
		if err := v.UnmarshalKey("donation", &updated); err != nil {
			log.Printf("[donation-config] reload failed: %v", err)
			return
		}
		if err := validateDonationConfig(updated); err != nil {
			log.Printf("[donation-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[donation-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticDonationConfigHolder returns a holder pinned to cfg, for tests.
func NewStaticDonationConfigHolder(cfg DonationConfig) *DonationConfigHolder {
	holder := &DonationConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *DonationConfigHolder) Get() DonationConfig {
	return h.current.Load().(DonationConfig)
}

func validateDonationConfig(cfg DonationConfig) error {
	if len(cfg.PresetAmounts) == 0 {
		return errors.New("donation.presetAmounts cannot be empty")
	}
	if len(cfg.TipPercents) == 0 {
		return errors.New("donation.tipPercents cannot be empty")
	}
	if cfg.MinAmount <= 0 {
		return errors.New("donation.minAmount must be positive")
	}
	if cfg.Currency == "" {
		return errors.New("donation.currency cannot be empty")
	}
	found := false
	for _, pct := range cfg.TipPercents {
		if pct == cfg.DefaultTipPercent {
			found = true
			break
		}
	}
	if !found {
		return errors.New("donation.defaultTipPercent must be one of donation.tipPercents")
	}
	return nil
}
