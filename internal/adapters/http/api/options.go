package api

import (
	"github.com/HRehwald/PoolChat/pkg/logger"
)

// Default server configuration constants.
const (
	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
	defaultMaxClients     = 1000
	defaultMaxBodyBytes   = 8 << 10
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit sets the per-client request rate and burst. A non-positive
// rps disables rate limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateLimitRPS = rps
		if burst > 0 {
			s.rateLimitBurst = burst
		}
	}
}

// WithTrustedProxy makes the rate limiter key clients by X-Forwarded-For or
// X-Real-IP. Enable it only when a reverse proxy sets those headers.
func WithTrustedProxy(trusted bool) Option {
	return func(s *Server) {
		s.trustProxyHeaders = trusted
	}
}

// WithMaxClients bounds how many client limiters are tracked at once.
func WithMaxClients(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxClients = n
		}
	}
}

// WithMaxBodyBytes caps the size of a POST /ask body.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(logger logger.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}
