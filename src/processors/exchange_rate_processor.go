package processors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
)

var errMalformedRates = errors.New("malformed exchange rate response")

// FallbackRates returns a fresh copy of the built-in table used whenever the
// live service cannot be used.
func FallbackRates() models.RateTable {
	return models.RateTable{
		"USD": 1.0,
		"EUR": 0.91,
		"GBP": 0.78,
		"INR": 83.5,
		"AUD": 1.52,
		"CAD": 1.36,
	}
}

// RateFetcher resolves the USD-based exchange-rate table.
type RateFetcher struct {
	client *http.Client
	url    string
}

func NewRateFetcher(client *http.Client, url string) *RateFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &RateFetcher{client: client, url: url}
}

// GetRates fetches the live table once. Any failure yields the fallback table
// unchanged: no retry and no merging of live and fallback entries.
func (f *RateFetcher) GetRates(ctx context.Context) (models.RateTable, models.RateSource) {
	rates, err := f.FetchRates(ctx)
	if err != nil {
		logger.L.Warn("Live exchange rates unavailable, using fallback table", "url", f.url, "error", err)
		return FallbackRates(), models.RateSourceFallback
	}
	logger.L.Info("Live exchange rates loaded", "url", f.url, "currencyCount", len(rates))
	return rates, models.RateSourceLive
}

// FetchRates performs the HTTP call and validates the table.
func (f *RateFetcher) FetchRates(ctx context.Context) (models.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building exchange rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling exchange rate service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("exchange rate service returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload models.RatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedRates, err)
	}
	if err := ValidateRates(payload.Rates); err != nil {
		return nil, err
	}
	return models.RateTable(payload.Rates), nil
}

// ValidateRates rejects tables that would break normalization: a missing
// table, USD not at exactly 1.0, or any zero, negative or non-finite rate.
func ValidateRates(rates map[string]float64) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: missing \"rates\"", errMalformedRates)
	}
	if usd, ok := rates["USD"]; !ok || usd != 1.0 {
		return fmt.Errorf("%w: USD rate must be 1.0", errMalformedRates)
	}
	for code, rate := range rates {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: rate for %s is %v", errMalformedRates, code, rate)
		}
	}
	return nil
}
