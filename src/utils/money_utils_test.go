package utils

import "testing"

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{100000, 100000},
		{1234.567, 1234.57},
		{0.125, 0.13},
		{-2.005, -2.01},
	}
	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{100000, "USD", "100,000.00 USD"},
		{1234.567, "EUR", "1,234.57 EUR"},
		{8350000, "INR", "8,350,000.00 INR"},
		{12.5, "", "12.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(3.14159, 2); got != 3.14 {
		t.Errorf("expected 3.14, got %v", got)
	}
}
