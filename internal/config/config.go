// Package config defines assistant configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load layers an optional YAML file and POOLCHAT_ env vars over New.
// - Errors are wrapped around this package's sentinel kinds.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address used with --serve, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WebChunksPath points at the website chunk corpus (JSON array).
	WebChunksPath string `koanf:"web_chunks_path"`

	// LocalKBPath points at the structured staff knowledge base (JSON object).
	LocalKBPath string `koanf:"local_kb_path"`

	// InteractionLogPath is the JSON Lines file every question is appended to.
	InteractionLogPath string `koanf:"interaction_log_path"`

	// LogQueueSize bounds the in-memory interaction log queue.
	LogQueueSize int `koanf:"log_queue_size"`

	// AnswerCacheSize sets the LRU answer cache size. Zero disables caching.
	AnswerCacheSize int `koanf:"answer_cache_size"`

	// RateLimitRPS and RateLimitBurst configure the per-client HTTP limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// TrustProxyHeaders keys the rate limiter by X-Forwarded-For/X-Real-IP.
	// Only safe behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers"`

	// HistoryFile stores REPL line history. Empty disables history.
	HistoryFile string `koanf:"history_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		WebChunksPath:      "kb/web_chunks.json",
		LocalKBPath:        "kb/local_kb.json",
		InteractionLogPath: "logs/interactions.jsonl",
		LogQueueSize:       1024,
		AnswerCacheSize:    512,
		RateLimitRPS:       5,
		RateLimitBurst:     10,
		TrustProxyHeaders:  false,
		HistoryFile:        "",
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.WebChunksPath == "":
		return invalid("web_chunks_path must not be empty")
	case c.LocalKBPath == "":
		return invalid("local_kb_path must not be empty")
	case c.InteractionLogPath == "":
		return invalid("interaction_log_path must not be empty")
	case c.LogQueueSize <= 0:
		return invalid("log_queue_size must be positive")
	case c.AnswerCacheSize < 0:
		return invalid("answer_cache_size must not be negative")
	case c.RateLimitRPS <= 0:
		return invalid("rate_limit_rps must be positive")
	case c.RateLimitBurst <= 0:
		return invalid("rate_limit_burst must be positive")
	}
	return nil
}
