package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// NewPingHandler returns a liveness probe handler.
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.Response "Pong!"
// @Router /ping [get]
func NewPingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.JSON(w, http.StatusOK, models.Response{
			Success:   true,
			Message:   "Pong!",
			Timestamp: responses.Now(),
		})
	}
}
