package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/HRehwald/PoolChat/internal/adapters/cli"
	"github.com/HRehwald/PoolChat/internal/adapters/http/api"
	"github.com/HRehwald/PoolChat/internal/adapters/http/swagger"
	app "github.com/HRehwald/PoolChat/internal/app"
	"github.com/HRehwald/PoolChat/internal/config"
	"github.com/HRehwald/PoolChat/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// flags holds the parsed command line.
type flags struct {
	serve      bool
	configPath string
	addr       string
	logLevel   string
	help       bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet, f := newFlagSet()
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if f.help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	// Initialize logging. Diagnostics go to stderr so REPL answers on
	// stdout stay clean.
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, f)
	if err != nil {
		return err
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	if f.serve {
		return serveHTTP(ctx, cfg, svc, loggerInstance)
	}
	return runREPL(ctx, cfg, svc)
}

func newFlagSet() (*pflag.FlagSet, *flags) {
	f := &flags{}
	flagSet := pflag.NewFlagSet("poolchat", pflag.ContinueOnError)
	flagSet.BoolVar(&f.serve, "serve", false, "serve the HTTP API instead of the interactive prompt")
	flagSet.StringVarP(&f.configPath, "config", "c", "", "YAML config file (overrides "+config.EnvConfigPath+")")
	flagSet.StringVar(&f.addr, "addr", "", "HTTP listen address (overrides config)")
	flagSet.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flagSet.BoolVarP(&f.help, "help", "h", false, "show help")
	return flagSet, f
}

// loadConfig layers command line overrides on top of the loaded config.
func loadConfig(ctx context.Context, f *flags) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.LoadFrom(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f.addr != "" {
		cfg.Addr = f.addr
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log),
		app.WithKnowledgePaths(cfg.WebChunksPath, cfg.LocalKBPath),
		app.WithInteractionLogPath(cfg.InteractionLogPath),
		app.WithLogQueueSize(cfg.LogQueueSize),
		app.WithAnswerCacheSize(cfg.AnswerCacheSize),
	)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.Server {
	mux := http.NewServeMux()

	// OpenAPI document under /openapi.yaml
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTrustedProxy(cfg.TrustProxyHeaders),
		api.WithLogger(log.Named("http")),
	)
	apiServer.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) error {
	srv := newHTTPServer(ctx, cfg, svc, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

func runREPL(ctx context.Context, cfg *config.Config, svc *app.Service) error {
	repl := cli.New(svc, cli.WithReader(cli.NewTerminalReader(cfg.HistoryFile)))
	defer func() { _ = repl.Close() }()
	return repl.Run(ctx)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `PoolChat answers questions about the aquatics facility.

By default it starts an interactive prompt. Type /help inside the prompt
for commands. With --serve it exposes the same assistant over HTTP.

Usage:
  poolchat [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
