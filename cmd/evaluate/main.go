// Command evaluate replays labelled questions through the assistant and
// reports which guardrail decisions matched.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	app "github.com/HRehwald/PoolChat/internal/app"
	"github.com/HRehwald/PoolChat/internal/config"
	"github.com/HRehwald/PoolChat/internal/evaluation"
	"github.com/HRehwald/PoolChat/pkg/logger"
)

const defaultQueriesPath = "kb/test_queries.json"

// errFailures signals that at least one case did not match.
var errFailures = errors.New("evaluation failures")

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errFailures):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var (
		configPath  string
		queriesPath string
		webPath     string
		localPath   string
	)
	flagSet := pflag.NewFlagSet("evaluate", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flagSet.StringVarP(&queriesPath, "queries", "q", defaultQueriesPath, "JSON file of {question, expected_outcome}")
	flagSet.StringVar(&webPath, "web-chunks", "", "website corpus (overrides config)")
	flagSet.StringVar(&localPath, "local-kb", "", "structured knowledge base (overrides config)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	_ = logger.SetLevelString("warn")

	if configPath == "" {
		configPath = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.LoadFrom(ctx, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if webPath != "" {
		cfg.WebChunksPath = webPath
	}
	if localPath != "" {
		cfg.LocalKBPath = localPath
	}

	cases, err := evaluation.LoadCases(queriesPath)
	if err != nil {
		return err
	}

	// Replays must not pollute the interaction log or hit the cache.
	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithKnowledgePaths(cfg.WebChunksPath, cfg.LocalKBPath),
		app.WithInteractionLogPath(""),
		app.WithAnswerCacheSize(0),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	report, err := evaluation.Run(ctx, svc, cases)
	if err != nil {
		return err
	}
	if err := report.Write(out); err != nil {
		return err
	}
	if !report.AllPassed() {
		return fmt.Errorf("%w: %d of %d", errFailures, report.Total()-report.Passed, report.Total())
	}
	return nil
}
