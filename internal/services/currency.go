package services

//go:generate mockgen -source=currency.go -destination=currency_mock.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
)

const (
	// CacheKeyAllRates holds the JSON encoded currency list of the last snapshot.
	CacheKeyAllRates = "all_rates"
	// CacheKeyLastUpdate holds the RFC 3339 fetch time of the last snapshot.
	CacheKeyLastUpdate = "last_update"

	DefaultBaseCurrency     = "UAH"
	DefaultBaseCurrencyName = "Українська гривня"
	DefaultCacheTTL         = 24 * time.Hour

	// resultPlaces is the number of decimal places reported for rates and results.
	resultPlaces = 4

	rateDateLayout = "02.01.2006"
)

var (
	// ErrCurrencyNotFound is returned when a code is absent from the current snapshot.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrInvalidAmount is returned for a missing or non-positive conversion amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// RatesFetcher reads raw rates from the upstream feed.
type RatesFetcher interface {
	FetchRates(ctx context.Context) ([]models.RawRate, error)
}

// Cache is a key/value store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recorder receives service level measurements.
type Recorder interface {
	ObserveCacheLookup(hit bool)
	ObserveFetch(d time.Duration, count int, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCacheLookup(bool) {}
func (nopRecorder) ObserveFetch(time.Duration, int, error) {}

// Option configures a CurrencyService.
type Option func(*CurrencyService)

// WithCacheTTL sets how long a fetched snapshot stays cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *CurrencyService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithBaseCurrency sets the code and name of the synthesized base currency.
func WithBaseCurrency(code, name string) Option {
	return func(s *CurrencyService) {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			s.baseCode = code
		}
		if name != "" {
			s.baseName = name
		}
	}
}

// WithRecorder plugs in a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *CurrencyService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *CurrencyService) {
		if now != nil {
			s.now = now
		}
	}
}

// CurrencyService serves rate snapshots through a read-through cache and
// computes cross rates and conversions against a single base currency.
type CurrencyService struct {
	fetcher  RatesFetcher
	cache    Cache
	recorder Recorder

	ttl      time.Duration
	baseCode string
	baseName string
	now      func() time.Time

	group singleflight.Group
}

// NewCurrencyService creates a new service instance.
func NewCurrencyService(fetcher RatesFetcher, cache Cache, opts ...Option) *CurrencyService {
	s := &CurrencyService{
		fetcher:  fetcher,
		cache:    cache,
		recorder: nopRecorder{},
		ttl:      DefaultCacheTTL,
		baseCode: DefaultBaseCurrency,
		baseName: DefaultBaseCurrencyName,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseCurrency returns the code every rate is expressed against.
func (s *CurrencyService) BaseCurrency() string {
	return s.baseCode
}

// GetAllRates returns the cached snapshot, or fetches, caches and returns a fresh one.
// Concurrent misses share a single upstream call.
func (s *CurrencyService) GetAllRates(ctx context.Context) (*models.RatesSnapshot, error) {
	if snapshot, ok := s.cachedSnapshot(ctx); ok {
		s.recorder.ObserveCacheLookup(true)
		logger.Log.Debugw("exchange rates served from cache", "last_updated", snapshot.LastUpdated)
		return snapshot, nil
	}
	s.recorder.ObserveCacheLookup(false)

	// Shared fetch must outlive a cancelled caller.
	v, err, shared := s.group.Do(CacheKeyAllRates, func() (any, error) {
		// A flight that finished between our lookup and Do already filled the cache.
		if snapshot, ok := s.cachedSnapshot(ctx); ok {
			return snapshot, nil
		}
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	snapshot := *v.(*models.RatesSnapshot)
	logger.Log.Infow("exchange rates served",
		"source", snapshot.Source,
		"last_updated", snapshot.LastUpdated,
		"count", len(snapshot.Rates),
		"shared", shared,
	)
	return &snapshot, nil
}

// GetExchangeRate returns how many units of to one unit of from buys.
func (s *CurrencyService) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	snapshot, err := s.GetAllRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.crossRate(snapshot, normalizeCode(from), normalizeCode(to))
}

// ConvertCurrency converts req.Amount from req.From to req.To.
// Result and rate are each rounded once, to four places, from the exact values.
func (s *CurrencyService) ConvertCurrency(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error) {
	if req.Amount == nil || *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	snapshot, err := s.GetAllRates(ctx)
	if err != nil {
		return nil, err
	}

	from, to := normalizeCode(req.From), normalizeCode(req.To)
	rate, err := s.crossRate(snapshot, from, to)
	if err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(*req.Amount)
	result := amount.Mul(rate)

	return &models.ConversionResult{
		From:   from,
		To:     to,
		Amount: *req.Amount,
		Result: result.Round(resultPlaces).InexactFloat64(),
		Rate:   rate.Round(resultPlaces).InexactFloat64(),
		Date:   snapshot.LastUpdated,
	}, nil
}

// GetAvailableCurrencies returns every code of the current snapshot, sorted.
func (s *CurrencyService) GetAvailableCurrencies(ctx context.Context) ([]string, error) {
	snapshot, err := s.GetAllRates(ctx)
	if err != nil {
		return nil, err
	}

	codes := snapshot.Codes()
	slices.Sort(codes)
	return codes, nil
}

// crossRate triangulates through the base currency.
func (s *CurrencyService) crossRate(snapshot *models.RatesSnapshot, from, to string) (decimal.Decimal, error) {
	fromCurrency, ok := snapshot.Find(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrCurrencyNotFound, from)
	}
	toCurrency, ok := snapshot.Find(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrCurrencyNotFound, to)
	}

	fromRate := decimal.NewFromFloat(fromCurrency.Rate)
	toRate := decimal.NewFromFloat(toCurrency.Rate)

	switch {
	case from == s.baseCode:
		return decimal.NewFromInt(1).Div(toRate), nil
	case to == s.baseCode:
		return fromRate, nil
	default:
		return fromRate.Div(toRate), nil
	}
}

// cachedSnapshot returns the snapshot only when both cache keys are present.
func (s *CurrencyService) cachedSnapshot(ctx context.Context) (*models.RatesSnapshot, bool) {
	ratesData, err := s.cache.Get(ctx, CacheKeyAllRates)
	if err != nil {
		logCacheError(CacheKeyAllRates, err)
		return nil, false
	}
	lastUpdate, err := s.cache.Get(ctx, CacheKeyLastUpdate)
	if err != nil {
		logCacheError(CacheKeyLastUpdate, err)
		return nil, false
	}

	var rates []models.Currency
	if err := json.Unmarshal(ratesData, &rates); err != nil {
		logger.Log.Warnw("cached exchange rates are corrupted", "error", err)
		return nil, false
	}

	return &models.RatesSnapshot{
		Rates:       rates,
		LastUpdated: string(lastUpdate),
		Source:      models.SourceCache,
	}, true
}

// refresh fetches the feed, stores the new snapshot and returns it.
func (s *CurrencyService) refresh(ctx context.Context) (*models.RatesSnapshot, error) {
	start := time.Now()
	raw, err := s.fetcher.FetchRates(ctx)
	s.recorder.ObserveFetch(time.Since(start), len(raw), err)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates", "error", err)
		return nil, err
	}

	now := s.now().UTC()
	rates := s.toCurrencies(raw, now)
	lastUpdated := now.Format(time.RFC3339)

	data, err := json.Marshal(rates)
	if err != nil {
		return nil, fmt.Errorf("encode rates: %w", err)
	}
	if err := s.cache.Set(ctx, CacheKeyAllRates, data, s.ttl); err != nil {
		logger.Log.Errorw("failed to cache exchange rates", "key", CacheKeyAllRates, "error", err)
	}
	if err := s.cache.Set(ctx, CacheKeyLastUpdate, []byte(lastUpdated), s.ttl); err != nil {
		logger.Log.Errorw("failed to cache exchange rates", "key", CacheKeyLastUpdate, "error", err)
	}

	return &models.RatesSnapshot{
		Rates:       rates,
		LastUpdated: lastUpdated,
		Source:      models.SourceAPI,
	}, nil
}

// toCurrencies maps feed records to currencies and appends the base currency.
// Records without a code, with a non-positive rate, or repeating a code are skipped.
func (s *CurrencyService) toCurrencies(raw []models.RawRate, now time.Time) []models.Currency {
	currencies := make([]models.Currency, 0, len(raw)+1)
	seen := make(map[string]struct{}, len(raw)+1)
	seen[s.baseCode] = struct{}{}

	for _, r := range raw {
		code := normalizeCode(r.ISOCode)
		if code == "" || r.Rate <= 0 {
			logger.Log.Warnw("skipping invalid exchange rate record", "code", r.ISOCode, "rate", r.Rate)
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		currencies = append(currencies, models.Currency{
			Code: code,
			Name: r.Name,
			Rate: r.Rate,
			Date: r.Date,
		})
	}

	baseDate := now.Format(rateDateLayout)
	if len(raw) > 0 && raw[0].Date != "" {
		baseDate = raw[0].Date
	}

	return append(currencies, models.Currency{
		Code: s.baseCode,
		Name: s.baseName,
		Rate: 1,
		Date: baseDate,
	})
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func logCacheError(key string, err error) {
	if errors.Is(err, repositories.ErrCacheMiss) {
		return
	}
	logger.Log.Warnw("cache lookup failed, falling back to upstream", "key", key, "error", err)
}
