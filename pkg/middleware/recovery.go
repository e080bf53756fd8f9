package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/logger"
)

// Recovery turns a handler panic into a logged 500 instead of a dropped
// connection. It sits outermost so it also covers the other middleware.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}

				log.Error("Panic recovered",
					"request_id", requestIDFrom(r.Context()),
					"error", v,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
