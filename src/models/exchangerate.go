package models

// RatesResponse is the body returned by the live exchange-rate service.
type RatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// RateTable maps a currency code to its rate against USD, such that
// amount_in_usd = amount / rate.
type RateTable map[string]float64

// Rate returns the rate for code, or 1.0 for codes the table does not know.
func (t RateTable) Rate(code string) float64 {
	if rate, ok := t[code]; ok {
		return rate
	}
	return 1.0
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceFallback RateSource = "fallback"
)
