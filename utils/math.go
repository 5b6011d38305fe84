package utils

import "github.com/shopspring/decimal"

// RoundCents rounds a currency amount to 2 decimal places, half up.
// Intermediate accrual math stays in float64; rounding happens once, at
// the persistence boundary.
func RoundCents(val float64) float64 {
	f, _ := decimal.NewFromFloat(val).Round(2).Float64()
	return f
}

// SameCents reports whether two amounts are equal once rounded to cents.
func SameCents(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}
