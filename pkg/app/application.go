package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"github.com/reshmacodewarrior/BusBookingSystem/internal/buses/handler"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/contracts"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/middleware"
)

// Application owns the HTTP server and the middleware plumbing around a
// service's routes. Probes bypass the request-shaping middleware so an
// overloaded service still answers its health checks.
type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp mounts the service routes and the health probes and configures the
// server. Call once before Run.
func (a *Application) SetApp(appHandler contracts.Handler) {
	health := a.buildHealthHandler()

	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/ready", health)
	mux.Handle("/", a.buildServiceHandler(appHandler))

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) buildHealthHandler() http.Handler {
	router := httprouter.New()
	handler.NewHealthHandler(a.cfg.Client.Mongo.Client, a.cfg.Log).RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)

	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
	return h
}

func (a *Application) buildServiceHandler(appHandler contracts.Handler) http.Handler {
	router := httprouter.New()
	appHandler.RegisterRoutes(router)

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.DefaultClientExtractor,
		a.cfg.Log,
	)

	// Wrapped innermost to outermost: idempotency caches what the handler
	// wrote; recovery catches panics from everything below it.
	var h http.Handler = router
	h = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.RateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)

	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
	return h
}

// Run serves until the process receives SIGINT or SIGTERM, then drains
// in-flight requests before returning.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.cfg.Log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	a.cfg.Log.Info("Background workers stopped")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
