// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/HRehwald/PoolChat/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AskDependencies
	TopicsDependencies
	StatsProvider
}

// Server wires HTTP routes for the assistant API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	askHandler    *AskHandler
	topicsHandler *TopicsHandler
	limiter       *rateLimiter

	rateLimitRPS   float64
	rateLimitBurst int
	maxClients     int
	maxBodyBytes   int64

	trustProxyHeaders bool

	logger logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		rateLimitRPS:   defaultRateLimitRPS,
		rateLimitBurst: defaultRateLimitBurst,
		maxClients:     defaultMaxClients,
		maxBodyBytes:   defaultMaxBodyBytes,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}
	if s.rateLimitRPS > 0 {
		s.limiter = newRateLimiter(s.rateLimitRPS, s.rateLimitBurst, s.maxClients)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.askHandler = NewAskHandler(deps, s.maxBodyBytes, s.logger)
	s.topicsHandler = NewTopicsHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux. Only /ask is rate limited; it is
// the only route that does real work per request.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/topics", MetricsMiddleware(s.topicsHandler.HandleTopics, "topics"))
	mux.HandleFunc("/ask", MetricsMiddleware(s.rateLimit(s.askHandler.HandleAsk), "ask"))
}

// Handler returns a ready-to-serve mux with every route registered.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return mux
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
