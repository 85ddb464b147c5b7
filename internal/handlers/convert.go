package handlers

//go:generate mockgen -source=convert.go -destination=convert_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
	"github.com/sbilibin2017/gw-currency-converter/internal/validators"
)

// Converter defines the interface that the service must implement.
type Converter interface {
	ConvertCurrency(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error)
}

// ConversionRequestGetter returns a request already decoded by middleware.
type ConversionRequestGetter func(ctx context.Context) (models.ConversionRequest, bool)

// NewConvertHandler returns an HTTP handler converting an amount between two currencies.
// When requestGetter finds nothing the body is decoded and validated here.
// @Summary Convert amount
// @Description Converts amount from one currency to another at the current cross rate
// @Tags convert
// @Accept json
// @Produce json
// @Param request body models.ConversionRequest true "Conversion request"
// @Success 200 {object} models.Response{data=models.ConversionResult} "Conversion result"
// @Failure 400 {object} models.Response "Validation error or unknown currency"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /api/convert [post]
func NewConvertHandler(svc Converter, requestGetter ConversionRequestGetter, development bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ConversionRequest
		ok := false
		if requestGetter != nil {
			req, ok = requestGetter(r.Context())
		}
		if !ok {
			var details []string
			req, details = validators.DecodeConversionRequest(r.Body)
			if len(details) > 0 {
				responses.ValidationError(w, details)
				return
			}
		}

		result, err := svc.ConvertCurrency(r.Context(), req)
		if err != nil {
			logger.Log.Warnw("conversion failed", "from", req.From, "to", req.To, "error", err)
			if isClientError(err) {
				responses.Error(w, http.StatusBadRequest, err.Error(), "Check the input data")
				return
			}
			writeInternalError(w, "Internal server error", err, development)
			return
		}

		responses.Success(w, result, fmt.Sprintf("%s %s = %s %s",
			formatAmount(result.Amount), result.From,
			formatAmount(result.Result), result.To,
		))
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
