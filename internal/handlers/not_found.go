package handlers

import (
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// NotFound answers every unmatched route, and unsupported methods, with the 404 envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	responses.ErrorWithTimestamp(w, http.StatusNotFound, "Route not found",
		fmt.Sprintf("Route %s %s does not exist", r.Method, r.URL.Path))
}
