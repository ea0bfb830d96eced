package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/styler3/mtg-rss/config"
	"github.com/styler3/mtg-rss/logging"
	"github.com/styler3/mtg-rss/pipeline"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration from environment variable or returns default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// options holds the command line overrides. Empty values keep the
// configuration file setting.
type options struct {
	configPath string
	output     string
	format     string
	timeout    time.Duration
	logLevel   string
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("mtg-rss", flag.ContinueOnError)
	opts := &options{}

	fs.StringVar(&opts.configPath, "config", getEnv("MTGRSS_CONFIG", ""), "Path to YAML config file, default ~/.mtg-rss/config.yaml (MTGRSS_CONFIG)")
	fs.StringVar(&opts.output, "output", getEnv("MTGRSS_OUTPUT", ""), "Path of the generated feed (MTGRSS_OUTPUT)")
	fs.StringVar(&opts.format, "format", getEnv("MTGRSS_FORMAT", ""), "Feed format: rss, atom or json (MTGRSS_FORMAT)")
	fs.DurationVar(&opts.timeout, "timeout", getEnvDuration("MTGRSS_FETCH_TIMEOUT", 0), "Timeout per page fetch (MTGRSS_FETCH_TIMEOUT)")
	fs.StringVar(&opts.logLevel, "log-level", getEnv("MTGRSS_LOG_LEVEL", ""), "Log level: debug, info, warn or error (MTGRSS_LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// loadConfig reads the configuration file and applies the overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadConfigFile(opts.configPath)
	} else {
		cfg, err = config.LoadDefaultConfigFile()
	}
	if err != nil {
		return nil, err
	}

	if opts.output != "" {
		cfg.Feed.Output = opts.output
	}
	if opts.format != "" {
		cfg.Feed.Format = opts.format
	}
	if opts.timeout > 0 {
		cfg.Fetch.Timeout = opts.timeout
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// printSummary prints the outcome of a run in human-readable form
func printSummary(result *pipeline.Result) {
	fmt.Printf("Wrote %d items to %s (%d bytes) in %s\n",
		result.Items, result.OutputPath, result.Bytes, result.Duration.Round(time.Millisecond))

	if len(result.Failures) == 0 {
		return
	}
	fmt.Printf("Skipped %d of %d articles:\n", len(result.Failures), result.References)
	for _, failure := range result.Failures {
		link := failure.Link
		if link == "" {
			link = failure.Href
		}
		fmt.Printf("  %s\n    %v\n", link, failure.Err)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, pipeline.Deps{Logger: logger})
	if err != nil {
		return err
	}

	// Setup signal handling so an interrupted run leaves the old feed in place
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, "")
	if err != nil {
		return err
	}

	printSummary(result)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
