package handlers

//go:generate mockgen -source=currencies.go -destination=currencies_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// CurrencyLister defines the interface that the service must implement.
type CurrencyLister interface {
	GetAvailableCurrencies(ctx context.Context) ([]string, error)
}

// NewGetCurrenciesHandler returns an HTTP handler listing the supported codes.
// @Summary List currencies
// @Tags rates
// @Produce json
// @Success 200 {object} models.Response{data=models.CurrencyList} "Currency codes"
// @Failure 500 {object} models.Response "Failed to retrieve currency list"
// @Router /api/currencies [get]
func NewGetCurrenciesHandler(svc CurrencyLister, development bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.GetAvailableCurrencies(r.Context())
		if err != nil {
			logger.Log.Errorw("list currencies failed", "error", err)
			writeInternalError(w, "Failed to retrieve currency list", err, development)
			return
		}

		responses.Success(w, models.CurrencyList{
			Currencies: codes,
			Count:      len(codes),
		}, "Currency list retrieved successfully")
	}
}
