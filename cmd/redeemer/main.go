package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"key-redeemer/internal/catalog"
	"key-redeemer/internal/config"
	"key-redeemer/internal/keys"
	"key-redeemer/internal/outcome"
	"key-redeemer/internal/redeem"
	"key-redeemer/internal/service"
	"key-redeemer/internal/session"
	"key-redeemer/internal/steam"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("mode", cfg.Run.Mode).Msg("starting key redeemer")

	// Cancel the run on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := bufio.NewReader(os.Stdin)
	stdout := os.Stdout

	// Load candidate keys
	loader, err := newCandidateLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}

	entries, err := loader.Load(ctx, cfg.Candidates.Path)
	if err != nil {
		return fmt.Errorf("failed to load candidate keys: %w", err)
	}
	logger.Info().Int("entries", len(entries)).Msg("candidate keys loaded")

	// Initialize store client
	client, err := steam.NewClient(&steam.ClientConfig{
		StoreBaseURL: cfg.Store.BaseURL,
		APIBaseURL:   cfg.Store.APIBaseURL,
		Timeout:      cfg.Store.HTTPTimeout(),
		RateLimit:    cfg.Store.RateLimit,
		RateBurst:    cfg.Store.RateBurst,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store client: %w", err)
	}

	// Initialize session store with interactive login fallback
	authenticator := session.NewPromptAuthenticator(stdin, stdout, client)
	store := session.NewFileStore(cfg.Session.File, client, authenticator, logger)

	// Initialize outcome files
	router := outcome.NewRouter(cfg.Output.Dir, logger)
	defer func() {
		if err := router.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close outcome files")
		}
	}()

	// Initialize services
	svc := service.NewRedemptionService(
		store,
		catalog.NewFetcher(client, logger),
		catalog.NewMatcher(catalog.NewFuzzyScorer(), logger),
		redeem.NewEngine(client, stdout, cfg.Run.Quiet, logger),
		router,
		stdout,
		logger,
	)

	if cfg.Run.Mode == "export" {
		path, err := svc.Export(ctx, entries, cfg.Output.Dir)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(stdout, "Exported %d keys to %s\n", len(entries), path)
		return nil
	}

	var confirm service.ConfirmFunc
	if cfg.Run.Mode == "confirm" {
		confirm = newConfirmPrompt(stdin, stdout)
	}

	summary, err := svc.Run(ctx, entries, confirm)
	if summary != nil {
		printSummary(stdout, summary.Redeemed, summary.OwnedSkipped, summary.Errored)
	}
	if err != nil {
		return fmt.Errorf("redemption run failed: %w", err)
	}

	logger.Info().Msg("key redeemer finished")
	return nil
}

// newCandidateLoader returns the local file loader, fronted by S3 when enabled.
func newCandidateLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (keys.Loader, error) {
	format, ok := keys.ParseFormat(cfg.Candidates.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported candidates format: %s", cfg.Candidates.Format)
	}

	fileLoader := keys.NewFileLoader(format, logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for candidate files (S3 disabled)")
		return fileLoader, nil
	}

	s3Loader, err := keys.NewS3Loader(ctx, keys.S3Options{
		Bucket:   cfg.S3.Bucket,
		Region:   cfg.S3.Region,
		Endpoint: cfg.S3.Endpoint,
	}, format, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader, nil
	}

	return keys.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger), nil
}

// newConfirmPrompt asks on out before every redemption and reads the answer
// from in. Only "y" or "yes" confirms; end of input declines.
func newConfirmPrompt(in *bufio.Reader, out io.Writer) service.ConfirmFunc {
	return func(title string) bool {
		fmt.Fprintf(out, "Do you want to redeem the key for %s? (y/n): ", title)
		answer, err := in.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func printSummary(out io.Writer, redeemed, ownedSkipped, errored int) {
	fmt.Fprintf(out, "Redeemed: %d, already owned or skipped: %d, errored: %d\n", redeemed, ownedSkipped, errored)
}
