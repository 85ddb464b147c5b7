package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
	"github.com/sbilibin2017/gw-currency-converter/internal/validators"
)

type conversionRequestKey struct{}

// ValidateCurrencyCodes rejects routes whose from/to URL params are not 3-letter codes.
func ValidateCurrencyCodes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range []string{"from", "to"} {
			code := chi.URLParam(r, param)
			if code != "" && !validators.IsValidCurrencyCode(code) {
				logger.Log.Warnw("invalid currency code", "param", param, "code", code)
				responses.Error(w, http.StatusBadRequest,
					fmt.Sprintf("Invalid currency code %q", param),
					"Currency code must contain exactly 3 letters",
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateConversion decodes and validates a conversion body, then hands the
// parsed request to the next handler through the context.
func ValidateConversion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, details := validators.DecodeConversionRequest(r.Body)
		if len(details) > 0 {
			logger.Log.Warnw("invalid conversion request", "details", details)
			responses.ValidationError(w, details)
			return
		}

		ctx := context.WithValue(r.Context(), conversionRequestKey{}, req)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetConversionRequest returns the request stored by ValidateConversion.
func GetConversionRequest(ctx context.Context) (models.ConversionRequest, bool) {
	req, ok := ctx.Value(conversionRequestKey{}).(models.ConversionRequest)
	return req, ok
}
