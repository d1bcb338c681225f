// Package http exposes the expense operations as a small JSON API: the
// Go-native stand-in for the desktop form, funneling raw messages into the
// same parser the bot uses.
package http

import (
	"net/http"
	"time"

	"expenses/internal/services"
)

const (
	summaryCacheSize = 32
	summaryCacheTTL  = 30 * time.Second
	writesPerMinute  = 60
)

type Server struct {
	service    *services.ExpenseService
	statsCache *lruCache[cumulativeResponse]
	limiter    *rateLimiter
}

func New(service *services.ExpenseService) *Server {
	return &Server{
		service:    service,
		statsCache: newLRUCache[cumulativeResponse](summaryCacheSize, summaryCacheTTL),
		limiter:    newRateLimiter(writesPerMinute),
	}
}

// Routes builds the request mux wrapped in the trace, security-header and
// write rate-limit middleware. The probes sit inside the chain; reads are
// never throttled.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("POST /expenses", s.handleAddExpense)
	mux.HandleFunc("DELETE /expenses", s.handleDeleteExpense)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("GET /summary", s.handlePeriodSummary)
	mux.HandleFunc("GET /summary/average", s.handleCumulativeSummary)
	return withTrace(withSecurityHeaders(s.limiter.withRateLimit(mux)))
}

// NewServer returns an http.Server with the usual timeouts configured.
func NewServer(addr string, service *services.ExpenseService) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        New(service).Routes(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}
