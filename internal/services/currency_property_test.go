package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
)

type staticFetcher struct {
	rates []models.RawRate
}

func (f staticFetcher) FetchRates(context.Context) ([]models.RawRate, error) {
	return f.rates, nil
}

func rawRatesGen() *rapid.Generator[[]models.RawRate] {
	return rapid.Custom(func(t *rapid.T) []models.RawRate {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		rates := make([]models.RawRate, 0, n)
		for i := 0; i < n; i++ {
			rates = append(rates, models.RawRate{
				NumericCode: i,
				Name:        fmt.Sprintf("Currency %d", i),
				Rate:        rapid.Float64Range(0.01, 1000).Draw(t, fmt.Sprintf("rate%d", i)),
				ISOCode:     fmt.Sprintf("C%02d", i),
				Date:        "17.10.2026",
			})
		}
		return rates
	})
}

func codesOf(rates []models.RawRate) []string {
	codes := []string{DefaultBaseCurrency}
	for _, r := range rates {
		codes = append(codes, r.ISOCode)
	}
	return codes
}

func TestCurrencyService_RateIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rates := rawRatesGen().Draw(t, "rates")
		svc := NewCurrencyService(staticFetcher{rates}, repositories.NewMemoryCacheRepository())
		code := rapid.SampledFrom(codesOf(rates)).Draw(t, "code")

		got, err := svc.GetExchangeRate(context.Background(), code, code)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(decimal.NewFromInt(1)) {
			t.Fatalf("rate %s/%s = %s, want 1", code, code, got)
		}
	})
}

func TestCurrencyService_RateInverse(t *testing.T) {
	tolerance := decimal.New(1, -9)

	rapid.Check(t, func(t *rapid.T) {
		rates := rawRatesGen().Draw(t, "rates")
		svc := NewCurrencyService(staticFetcher{rates}, repositories.NewMemoryCacheRepository())
		codes := codesOf(rates)
		a := rapid.SampledFrom(codes).Draw(t, "a")
		b := rapid.SampledFrom(codes).Draw(t, "b")

		ab, err := svc.GetExchangeRate(context.Background(), a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ba, err := svc.GetExchangeRate(context.Background(), b, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// ab * ba == 1 is the scale free form of ab == 1/ba.
		product := ab.Mul(ba)
		if product.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(tolerance) {
			t.Fatalf("rate(%s,%s)=%s rate(%s,%s)=%s product %s", a, b, ab, b, a, ba, product)
		}
	})
}

func TestCurrencyService_ConvertMatchesRate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rates := rawRatesGen().Draw(t, "rates")
		svc := NewCurrencyService(staticFetcher{rates}, repositories.NewMemoryCacheRepository())
		codes := codesOf(rates)
		from := rapid.SampledFrom(codes).Draw(t, "from")
		to := rapid.SampledFrom(codes).Draw(t, "to")
		amt := rapid.Float64Range(0.01, 1e9).Draw(t, "amount")

		rate, err := svc.GetExchangeRate(context.Background(), from, to)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res, err := svc.ConvertCurrency(context.Background(), models.ConversionRequest{From: from, To: to, Amount: &amt})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := decimal.NewFromFloat(amt).Mul(rate).Round(4).InexactFloat64()
		if res.Result != want {
			t.Fatalf("result %v, want %v", res.Result, want)
		}
		if res.Rate != rate.Round(4).InexactFloat64() {
			t.Fatalf("rate %v, want %v", res.Rate, rate.Round(4))
		}
	})
}
