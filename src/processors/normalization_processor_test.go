package processors

import (
	"math"
	"testing"

	"github.com/username/salarypredictor/src/models"
)

func TestToUSDAndConvert(t *testing.T) {
	rates := FallbackRates()
	tests := []struct {
		name     string
		amount   float64
		currency string
		wantUSD  float64
	}{
		{"usd identity", 100000, "USD", 100000},
		{"eur", 91000, "EUR", 100000},
		{"inr", 8350000, "INR", 100000},
		{"unknown treated as usd", 5000, "XYZ", 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToUSD(tt.amount, tt.currency, rates)
			if math.Abs(got-tt.wantUSD) > 1e-6 {
				t.Errorf("ToUSD = %v, want %v", got, tt.wantUSD)
			}
			back := Convert(got, tt.currency, rates)
			if math.Abs(back-tt.amount) > 1e-6 {
				t.Errorf("round trip = %v, want %v", back, tt.amount)
			}
		})
	}
}

func TestConvert_Examples(t *testing.T) {
	rates := FallbackRates()
	if got := Convert(100000, "INR", rates); math.Abs(got-8350000) > 1e-6 {
		t.Errorf("Convert INR = %v, want 8350000", got)
	}
	if got := Convert(100000, "GBP", rates); math.Abs(got-78000) > 1e-6 {
		t.Errorf("Convert GBP = %v, want 78000", got)
	}
	if got := Convert(100000, "JPY", rates); got != 100000 {
		t.Errorf("Convert unknown = %v, want 100000", got)
	}
}

func TestNormalizeSalaries_DoesNotMutateInput(t *testing.T) {
	in := []models.HistoricalRecord{
		{JobTitle: "Analyst", Salary: 91000, SalaryCurrency: "EUR"},
		{JobTitle: "Engineer", Salary: 120000, SalaryCurrency: "USD"},
	}
	out := NormalizeSalaries(in, FallbackRates())

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if math.Abs(out[0].SalaryInUSD-100000) > 1e-6 {
		t.Errorf("out[0].SalaryInUSD = %v, want 100000", out[0].SalaryInUSD)
	}
	if out[1].SalaryInUSD != 120000 {
		t.Errorf("out[1].SalaryInUSD = %v, want 120000", out[1].SalaryInUSD)
	}
	if in[0].SalaryInUSD != 0 {
		t.Error("input record was modified")
	}
}
