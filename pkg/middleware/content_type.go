package middleware

import (
	"net/http"
	"strings"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/logger"
)

// ContentTypeValidation rejects body-carrying requests whose media type is
// not application/json. GET, DELETE and the rest pass through unchecked.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				mediaType := contentTypeOf(r)
				if mediaType != "application/json" {
					log.Warn("Invalid Content-Type header",
						"request_id", requestIDFrom(r.Context()),
						"content_type", mediaType,
						"path", r.URL.Path,
						"method", r.Method,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnsupportedMediaType)
					_, _ = w.Write([]byte(`{"error":"Content-Type must be application/json"}`))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// contentTypeOf strips any media type parameters such as charset.
func contentTypeOf(r *http.Request) string {
	header := r.Header.Get("Content-Type")
	if mediaType, _, found := strings.Cut(header, ";"); found {
		return strings.TrimSpace(mediaType)
	}
	return strings.TrimSpace(header)
}
