package responses

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// JSON writes body with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "status", status, "error", err)
	}
}

// Success writes a 200 envelope carrying data.
func Success(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, models.Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, errMsg, message string) {
	JSON(w, status, models.Response{
		Success: false,
		Error:   errMsg,
		Message: message,
	})
}

// ErrorWithTimestamp writes a failure envelope stamped with the current time.
func ErrorWithTimestamp(w http.ResponseWriter, status int, errMsg, message string) {
	JSON(w, status, models.Response{
		Success:   false,
		Error:     errMsg,
		Message:   message,
		Timestamp: Now(),
	})
}

// ValidationError writes a 400 envelope listing every broken rule.
func ValidationError(w http.ResponseWriter, details []string) {
	JSON(w, http.StatusBadRequest, models.Response{
		Success: false,
		Error:   "Validation error",
		Message: "Check the input data",
		Details: details,
	})
}

// Now returns the current UTC time in RFC 3339 with milliseconds.
func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
