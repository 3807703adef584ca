package cart

import (
	"math"
)

// Totals is a priced breakdown.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Round2 rounds to cents, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ExtrasPerUnit is the extras price for one unit of the line.
func ExtrasPerUnit(l Line) float64 {
	var sum float64
	for _, ex := range l.Extras {
		sum += ex.UnitPrice * float64(ex.Quantity)
	}
	return sum
}

// LineTotal is the line's contribution to the subtotal.
func LineTotal(l Line) float64 {
	q := float64(l.Quantity)
	return l.UnitPrice*q + ExtrasPerUnit(l)*q
}

// Subtotal sums every line.
func Subtotal(c Cart) float64 {
	var sum float64
	for _, l := range c {
		sum += LineTotal(l)
	}
	return sum
}

// ItemCount sums line quantities.
func ItemCount(c Cart) int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// CheckoutTotals prices the cart at order creation: tax is rate of the
// subtotal and is added on top. Amounts are rounded to cents.
func CheckoutTotals(c Cart, rate float64) Totals {
	sub := Round2(Subtotal(c))
	tax := Round2(sub * rate)
	return Totals{Subtotal: sub, Tax: tax, Total: Round2(sub + tax)}
}

// HistoryTotals splits a stored order total for redisplay: tax is rate of
// the total and the subtotal is the remainder.
func HistoryTotals(total, rate float64) Totals {
	return Totals{
		Subtotal: Round2(total * (1 - rate)),
		Tax:      Round2(total * rate),
		Total:    Round2(total),
	}
}
