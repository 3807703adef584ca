package cart

import (
	"github.com/randalmurphal/vectis/pkg/vectis/config"
)

// Policy holds the pricing constants the engine applies.
type Policy struct {
	CheckoutTaxRate float64
	SizeMultiplier  float64
	SizedCategory   string
	SmallSize       string
	LargeSize       string
}

// DefaultPolicy returns the shipped pricing policy.
func DefaultPolicy() Policy {
	return PolicyFrom(config.DefaultSettings())
}

// PolicyFrom extracts the pricing policy from resolved settings.
func PolicyFrom(s config.Settings) Policy {
	return Policy{
		CheckoutTaxRate: s.CheckoutTaxRate,
		SizeMultiplier:  s.SizeMultiplier,
		SizedCategory:   s.SizedCategory,
		SmallSize:       s.SmallSize,
		LargeSize:       s.LargeSize,
	}
}

// Resize returns the unit price after moving from one size to another.
// Going up multiplies by SizeMultiplier, going down divides; both round to
// cents, so repeated toggling can drift by at most a cent per round trip.
func (p Policy) Resize(price float64, from, to string) float64 {
	switch {
	case from == p.SmallSize && to == p.LargeSize:
		return Round2(price * p.SizeMultiplier)
	case from == p.LargeSize && to == p.SmallSize:
		return Round2(price / p.SizeMultiplier)
	default:
		return price
	}
}
