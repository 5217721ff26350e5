package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bilancio/internal/cache"
	"bilancio/internal/export"
	"bilancio/internal/middleware/ratelimit"
	"bilancio/internal/middleware/security"
	"bilancio/internal/middleware/trace"
	"bilancio/internal/services"
)

// ReportAppender is the optional spreadsheet leg of the export endpoint.
type ReportAppender interface {
	AppendReport(ctx context.Context, report services.Report) error
}

type Server struct {
	http.Server

	service  *services.PeriodService
	exporter *export.Exporter
	appender ReportAppender // nil when no spreadsheet is configured

	rateLimiter *ratelimit.Limiter
	reportCache *cache.LRU[services.Report]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// appender may be nil.
func NewServer(addr string, service *services.PeriodService, exporter *export.Exporter, appender ReportAppender) *Server {
	mux := http.NewServeMux()

	s := &Server{
		service:          service,
		exporter:         exporter,
		appender:         appender,
		rateLimiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		reportCache:      cache.NewLRU[services.Report](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.cacheCleanupLoop()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/periods", s.handleSavePeriod)
	mux.HandleFunc("GET /api/periods", s.handleListPeriods)
	mux.HandleFunc("GET /api/periods/{id}", s.handleGetPeriod)
	mux.HandleFunc("DELETE /api/periods/{id}", s.handleDeletePeriod)
	mux.HandleFunc("GET /api/current-period", s.handleGetCurrentPeriod)
	mux.HandleFunc("PUT /api/current-period", s.handleSetCurrentPeriod)
	mux.HandleFunc("GET /api/periods/{id}/report", s.handleReport)
	mux.HandleFunc("GET /api/periods/{id}/advice", s.handleAdvice)
	mux.HandleFunc("POST /api/periods/{id}/export", s.handleExport)

	mux.HandleFunc("POST /api/calc/loan", s.handleCalcLoan)
	mux.HandleFunc("POST /api/calc/growth", s.handleCalcGrowth)
	mux.HandleFunc("POST /api/calc/tax", s.handleCalcTax)
	mux.HandleFunc("POST /api/calc/vat", s.handleCalcVAT)
	mux.HandleFunc("POST /api/calc/scenario", s.handleCalcScenario)
	mux.HandleFunc("GET /api/jurisdictions", s.handleJurisdictions)

	handler := trace.Middleware(clientIP)(
		security.Middleware(security.DefaultHeadersConfig())(
			s.rateLimiter.Middleware(clientIP)(mux)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.reportCache.CleanExpired(); n > 0 {
				slog.Debug("Report cache cleanup completed", "entries_removed", n)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady checks the database, the one dependency the server cannot
// serve without.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("storage unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
