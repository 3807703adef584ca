package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings is the resolved POS policy.
type Settings struct {
	// CheckoutTaxRate applies at order creation: total = subtotal * (1 + rate).
	CheckoutTaxRate float64 `env:"VECTIS_CHECKOUT_TAX_RATE"`

	// HistoryTaxRate splits a stored total when an order is redisplayed:
	// tax = total * rate, subtotal = total * (1 - rate).
	HistoryTaxRate float64 `env:"VECTIS_HISTORY_TAX_RATE"`

	// SizeMultiplier scales the unit price when a sized line goes up a size.
	SizeMultiplier float64 `env:"VECTIS_SIZE_MULTIPLIER"`

	SizedCategory string `env:"VECTIS_SIZED_CATEGORY"`
	SmallSize     string `env:"VECTIS_SMALL_SIZE"`
	LargeSize     string `env:"VECTIS_LARGE_SIZE"`

	// HistoryLimit bounds the undo history of the state store.
	HistoryLimit int `env:"VECTIS_HISTORY_LIMIT"`

	// SwitchCooldown is the minimum interval between accepted screen switches.
	SwitchCooldown time.Duration `env:"VECTIS_SWITCH_COOLDOWN"`

	SearchClass string `env:"VECTIS_SEARCH_CLASS"`
	Currency    string `env:"VECTIS_CURRENCY"`
}

// DefaultSettings returns the policy the POS ships with.
func DefaultSettings() Settings {
	return Settings{
		CheckoutTaxRate: 0.21,
		HistoryTaxRate:  0.15,
		SizeMultiplier:  1.2,
		SizedCategory:   "pizza",
		SmallSize:       "30cm",
		LargeSize:       "40cm",
		HistoryLimit:    50,
		SwitchCooldown:  100 * time.Millisecond,
		SearchClass:     "vect-search-input",
		Currency:        "€",
	}
}

// SettingsFrom overlays values found in cfg on top of DefaultSettings.
func SettingsFrom(cfg Config) Settings {
	s := DefaultSettings()
	s.CheckoutTaxRate = cfg.Float("pricing.checkout_tax_rate", s.CheckoutTaxRate)
	s.HistoryTaxRate = cfg.Float("pricing.history_tax_rate", s.HistoryTaxRate)
	s.SizeMultiplier = cfg.Float("pricing.size_multiplier", s.SizeMultiplier)
	s.SizedCategory = cfg.String("pricing.sized_category", s.SizedCategory)
	s.SmallSize = cfg.String("pricing.small_size", s.SmallSize)
	s.LargeSize = cfg.String("pricing.large_size", s.LargeSize)
	s.HistoryLimit = cfg.Int("state.history_limit", s.HistoryLimit)
	s.SwitchCooldown = cfg.Duration("ui.switch_cooldown", s.SwitchCooldown)
	s.SearchClass = cfg.String("ui.search_class", s.SearchClass)
	s.Currency = cfg.String("ui.currency", s.Currency)
	return s
}

// ApplyEnv overrides s with any VECTIS_* environment variables that are set.
// Unset variables leave the current value untouched.
func ApplyEnv(s *Settings) error {
	if err := env.Parse(s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return s.Validate()
}

// Validate rejects settings that would break pricing invariants.
func (s Settings) Validate() error {
	var errs []error
	if s.CheckoutTaxRate < 0 {
		errs = append(errs, fmt.Errorf("checkout tax rate %v is negative", s.CheckoutTaxRate))
	}
	if s.HistoryTaxRate < 0 || s.HistoryTaxRate >= 1 {
		errs = append(errs, fmt.Errorf("history tax rate %v outside [0, 1)", s.HistoryTaxRate))
	}
	if s.SizeMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("size multiplier %v must be positive", s.SizeMultiplier))
	}
	if s.SmallSize == "" || s.LargeSize == "" || s.SmallSize == s.LargeSize {
		errs = append(errs, errors.New("small and large sizes must be distinct and non-empty"))
	}
	if s.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("history limit %d must be positive", s.HistoryLimit))
	}
	if s.SwitchCooldown < 0 {
		errs = append(errs, fmt.Errorf("switch cooldown %v is negative", s.SwitchCooldown))
	}
	return errors.Join(errs...)
}
