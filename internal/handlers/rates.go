package handlers

//go:generate mockgen -source=rates.go -destination=rates_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// RatesGetter defines the interface that the service must implement.
type RatesGetter interface {
	GetAllRates(ctx context.Context) (*models.RatesSnapshot, error)
}

// NewGetRatesHandler returns an HTTP handler for the full rate snapshot.
// @Summary Get exchange rates
// @Description Returns every rate against the base currency, from cache or from the NBU feed
// @Tags rates
// @Produce json
// @Success 200 {object} models.Response{data=models.RatesSnapshot} "Exchange rates"
// @Failure 500 {object} models.Response "Failed to retrieve exchange rates"
// @Router /api/rates [get]
func NewGetRatesHandler(svc RatesGetter, development bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.GetAllRates(r.Context())
		if err != nil {
			logger.Log.Errorw("get rates failed", "error", err)
			writeInternalError(w, "Failed to retrieve exchange rates", err, development)
			return
		}

		responses.Success(w, snapshot, "Exchange rates retrieved successfully")
	}
}
