package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// guardedWriter serializes writes and blocks them once the deadline fires,
// so the handler goroutine and the timeout reply cannot interleave on the
// same connection.
type guardedWriter struct {
	http.ResponseWriter

	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (gw *guardedWriter) WriteHeader(code int) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if gw.timedOut || gw.written {
		return
	}
	gw.written = true
	gw.ResponseWriter.WriteHeader(code)
}

func (gw *guardedWriter) Write(b []byte) (int, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if gw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	gw.written = true
	return gw.ResponseWriter.Write(b)
}

// expire marks the writer timed out and reports whether the handler had
// already started the response.
func (gw *guardedWriter) expire() (started bool) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.timedOut = true
	return gw.written
}

// RequestTimeout caps how long a handler may run. The request context is
// cancelled at the deadline and, when nothing has been written yet, the
// client gets a 503 instead of waiting out the full handler.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(gw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if started := gw.expire(); !started {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"Request timeout"}`))
				}
			}
		})
	}
}
