package handlers

//go:generate mockgen -source=pair_rate.go -destination=pair_rate_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// ExchangeRateGetter defines the interface that the service must implement.
type ExchangeRateGetter interface {
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// NewGetExchangeRateHandler returns an HTTP handler for a single currency pair.
// @Summary Get pair rate
// @Description Returns how many units of {to} one unit of {from} buys
// @Tags rates
// @Produce json
// @Param from path string true "Source currency code" example(USD)
// @Param to path string true "Target currency code" example(EUR)
// @Success 200 {object} models.Response{data=models.PairRate} "Pair rate"
// @Failure 400 {object} models.Response "Unknown or malformed currency code"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /api/rates/{from}/{to} [get]
func NewGetExchangeRateHandler(svc ExchangeRateGetter, development bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := strings.ToUpper(chi.URLParam(r, "from"))
		to := strings.ToUpper(chi.URLParam(r, "to"))

		if from == "" || to == "" {
			responses.Error(w, http.StatusBadRequest, "Both currencies (from and to) are required", "Check the currency codes")
			return
		}

		rate, err := svc.GetExchangeRate(r.Context(), from, to)
		if err != nil {
			logger.Log.Warnw("get pair rate failed", "from", from, "to", to, "error", err)
			if isClientError(err) {
				responses.Error(w, http.StatusBadRequest, err.Error(), "Check the currency codes")
				return
			}
			writeInternalError(w, "Internal server error", err, development)
			return
		}

		responses.Success(w, models.PairRate{
			From:      from,
			To:        to,
			Rate:      rate.InexactFloat64(),
			Timestamp: responses.Now(),
		}, fmt.Sprintf("Rate %s/%s retrieved successfully", from, to))
	}
}
