package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/handler"
	"github.com/osse101/vstore/internal/inventory"
	"github.com/osse101/vstore/internal/logger"
	"github.com/osse101/vstore/internal/metrics"
)

// Options are the dependencies the HTTP API serves
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Inventory      inventory.Service
	Catalog        *catalog.Catalog
	Store          handler.Pinger
	// Cache is nil when reads are not cached
	Cache          handler.Purger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the route tree. Chi middleware executes in the order
// defined, outermost first.
func NewRouter(opts Options) chi.Router {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector(DefaultLimits)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	inv := handler.NewInventoryHandlers(opts.Inventory, opts.Catalog)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleGetCatalog(opts.Catalog))

		r.Route("/balances", func(r chi.Router) {
			r.Get("/", inv.HandleExportBalances())
			r.Put("/", inv.HandleImportBalances())
		})

		r.Route("/items/{itemID}", func(r chi.Router) {
			r.Get("/balance", inv.HandleGetBalance())
			r.Post("/buy", inv.HandleBuy())
			r.Post("/give", inv.HandleGive())
			r.Post("/take", inv.HandleTake())
		})

		r.Route("/goods/{itemID}", func(r chi.Router) {
			r.Get("/", inv.HandleGetGood())
			r.Post("/equip", inv.HandleEquip())
			r.Post("/unequip", inv.HandleUnequip())
			r.Post("/upgrade", inv.HandleUpgrade())
			r.Delete("/upgrades", inv.HandleRemoveUpgrades())
		})

		r.Post("/upgrades/{itemID}/force", inv.HandleForceUpgrade())
		r.Post("/market/callback", handler.HandleMarketCallback(opts.Inventory))
		r.Post("/cache/purge", handler.HandlePurgeCache(opts.Cache))
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// loggingMiddleware tags each request with an id, taken from X-Request-ID
// when the caller sent a valid one, and logs start and completion
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// isQuietPath skips request logging for health checks and scrapes
func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for _, c := range id {
		if c < '!' || c > '~' {
			return false
		}
	}
	return true
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
