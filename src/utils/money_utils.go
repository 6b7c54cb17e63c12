package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RoundMoney rounds half away from zero to cents in decimal arithmetic, so
// 0.125 becomes 0.13 rather than whatever its binary form rounds to.
func RoundMoney(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// FormatMoney renders "{amount} {currency}" with thousands separators and
// two decimals, e.g. "91,000.00 EUR".
func FormatMoney(amount float64, currency string) string {
	s := humanize.FormatFloat("#,###.##", RoundMoney(amount))
	return strings.TrimSpace(s + " " + currency)
}
