package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// DefaultNBUURL is the public NBU exchange rates endpoint.
const DefaultNBUURL = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?json"

// ErrSourceUnavailable is returned when the upstream rate feed cannot be read.
var ErrSourceUnavailable = errors.New("exchange rate source unavailable")

// NBURatesHTTPFacade reads the daily rate feed of the National Bank of Ukraine.
type NBURatesHTTPFacade struct {
	url    string
	client *http.Client
}

// NewNBURatesHTTPFacade creates a facade for the given endpoint.
// A non-positive timeout leaves the client without a deadline.
func NewNBURatesHTTPFacade(url string, timeout time.Duration) *NBURatesHTTPFacade {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultNBUURL
	}

	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}

	return &NBURatesHTTPFacade{url: url, client: client}
}

// FetchRates performs one GET against the feed and returns its records as is.
// It never retries.
func (f *NBURatesHTTPFacade) FetchRates(ctx context.Context) ([]models.RawRate, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates from NBU", "url", f.url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Log.Errorw("NBU returned unexpected status", "url", f.url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var rates []models.RawRate
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		logger.Log.Errorw("failed to decode NBU response", "url", f.url, "error", err)
		return nil, fmt.Errorf("%w: decode response: %v", ErrSourceUnavailable, err)
	}

	logger.Log.Infow("exchange rates fetched from NBU",
		"count", len(rates),
		"duration", time.Since(start),
	)

	return rates, nil
}
