package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

// IdempotencyStore holds responses keyed by client-chosen idempotency keys.
type IdempotencyStore interface {
	Get(key string) (*CachedResponse, bool)
	Set(key string, response *CachedResponse)
	Stop()
}

// CachedResponse is a replayable snapshot of a completed response.
type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	CreatedAt  time.Time
}

// InMemoryIdempotencyStore keeps cached responses in a map with TTL
// expiry. Expired entries are dropped lazily on read and swept hourly.
type InMemoryIdempotencyStore struct {
	mu     sync.RWMutex
	byKey  map[string]*CachedResponse
	ttl    time.Duration
	stopCh chan struct{}
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		byKey:  make(map[string]*CachedResponse),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *InMemoryIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	s.mu.RLock()
	cached, ok := s.byKey[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(cached.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.byKey, key)
		s.mu.Unlock()
		return nil, false
	}
	return cached, true
}

func (s *InMemoryIdempotencyStore) Set(key string, response *CachedResponse) {
	response.CreatedAt = time.Now()

	s.mu.Lock()
	s.byKey[key] = response
	s.mu.Unlock()
}

func (s *InMemoryIdempotencyStore) Stop() {
	close(s.stopCh)
}

func (s *InMemoryIdempotencyStore) sweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, cached := range s.byKey {
				if time.Since(cached.CreatedAt) > s.ttl {
					delete(s.byKey, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// recordingWriter tees the response into a buffer while it streams to the
// client, so a success can be cached for replay.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated idempotency key
// instead of re-running the handler. Only 2xx responses are stored: a client
// retrying after a failure should reach the handler again. Requests without
// the header pass through untouched.
func Idempotency(store IdempotencyStore, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = "Idempotency-Key"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(headerName)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := store.Get(key); ok {
				replay(w, cached)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, statusCode: 200}
			next.ServeHTTP(rec, r)

			if rec.statusCode >= 200 && rec.statusCode < 300 {
				store.Set(key, &CachedResponse{
					StatusCode: rec.statusCode,
					Headers:    w.Header().Clone(),
					Body:       rec.body.Bytes(),
				})
			}
		})
	}
}

func replay(w http.ResponseWriter, cached *CachedResponse) {
	for name, values := range cached.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
