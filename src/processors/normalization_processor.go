package processors

import (
	"github.com/username/salarypredictor/src/models"
)

// ToUSD converts amount from currency to USD. Unknown currencies are treated
// as already USD.
func ToUSD(amount float64, currency string, rates models.RateTable) float64 {
	return amount / rates.Rate(currency)
}

// Convert converts a USD amount into currency for display. Unknown currencies
// get rate 1.0.
func Convert(usdAmount float64, currency string, rates models.RateTable) float64 {
	return usdAmount * rates.Rate(currency)
}

// NormalizeSalaries returns copies of records with SalaryInUSD set. The input
// slice is not modified.
func NormalizeSalaries(records []models.HistoricalRecord, rates models.RateTable) []models.HistoricalRecord {
	out := make([]models.HistoricalRecord, len(records))
	for i, r := range records {
		r.SalaryInUSD = ToUSD(r.Salary, r.SalaryCurrency, rates)
		out[i] = r
	}
	return out
}
