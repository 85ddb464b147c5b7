package handlers

import (
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
	"github.com/sbilibin2017/gw-currency-converter/internal/services"
)

const redactedMessage = "Something went wrong"

// isClientError reports whether err is caused by the request's currencies or by the rate source.
func isClientError(err error) bool {
	return errors.Is(err, services.ErrCurrencyNotFound) ||
		errors.Is(err, services.ErrInvalidAmount) ||
		errors.Is(err, facades.ErrSourceUnavailable)
}

// writeInternalError answers 500, exposing err only in development mode.
func writeInternalError(w http.ResponseWriter, errMsg string, err error, development bool) {
	message := redactedMessage
	if development {
		message = err.Error()
	}
	responses.ErrorWithTimestamp(w, http.StatusInternalServerError, errMsg, message)
}
