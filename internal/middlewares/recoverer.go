package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/responses"
)

// Recoverer turns a handler panic into the 500 envelope.
// The panic value is exposed in the message only in development mode.
func Recoverer(development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Log.Errorw("panic recovered",
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"uri", r.RequestURI,
					"panic", rec,
					"stack", string(debug.Stack()),
				)

				if rw.wroteHeader {
					return
				}

				message := "Something went wrong"
				if development {
					message = fmt.Sprint(rec)
				}
				responses.ErrorWithTimestamp(rw, http.StatusInternalServerError, "Internal server error", message)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
