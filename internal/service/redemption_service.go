package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"key-redeemer/internal/keys"
	"key-redeemer/internal/model"
	"key-redeemer/internal/outcome"
	"key-redeemer/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// redemptionService implements RedemptionService.
type redemptionService struct {
	store    session.Store
	fetcher  CatalogFetcher
	matcher  OwnershipMatcher
	redeemer Redeemer
	recorder Recorder
	out      io.Writer
	logger   zerolog.Logger
}

// NewRedemptionService creates a new redemption service. User-facing
// progress lines are written to out.
func NewRedemptionService(
	store session.Store,
	fetcher CatalogFetcher,
	matcher OwnershipMatcher,
	redeemer Redeemer,
	recorder Recorder,
	out io.Writer,
	logger zerolog.Logger,
) RedemptionService {
	return &redemptionService{
		store:    store,
		fetcher:  fetcher,
		matcher:  matcher,
		redeemer: redeemer,
		recorder: recorder,
		out:      out,
		logger:   logger.With().Str("service", "redemption").Logger(),
	}
}

// Run redeems every candidate whose title is not already owned.
func (s *redemptionService) Run(ctx context.Context, entries []model.CandidateEntry, confirm ConfirmFunc) (*model.RunSummary, error) {
	summary := &model.RunSummary{RunID: uuid.New()}
	logger := s.logger.With().Str("run_id", summary.RunID.String()).Logger()

	sess, catalog, err := s.prepare(ctx)
	if err != nil {
		return nil, err
	}

	// Ownership filtering must finish before the first redemption call.
	unowned := make([]model.CandidateEntry, 0, len(entries))
	for _, entry := range entries {
		if s.matcher.Owned(catalog, entry.Title) {
			logger.Debug().Str("title", entry.Title).Msg("title already owned, skipping")
			summary.OwnedSkipped++
			continue
		}
		unowned = append(unowned, entry)
	}

	fmt.Fprintf(s.out, "Filtered out game keys that you already own on Steam; %d keys unowned.\n", len(unowned))

	for _, entry := range unowned {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if entry.Key != "" && !keys.IsValidKey(entry.Key) {
			logger.Warn().Err(model.ErrInvalidKey).Str("title", entry.Title).Msg("key not submitted")
			continue
		}

		if confirm != nil && !confirm(entry.Title) {
			logger.Debug().Str("title", entry.Title).Msg("redemption declined")
			continue
		}

		result, err := s.redeemer.Redeem(ctx, sess, entry)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			if errors.Is(err, model.ErrMissingSessionID) {
				return summary, err
			}
			logger.Error().Err(err).Str("title", entry.Title).Msg("redemption request failed")
			fmt.Fprintln(s.out, "request failed, try again")
			continue
		}

		if err := s.recorder.Record(result); err != nil {
			logger.Error().Err(err).Str("title", entry.Title).Msg("failed to record outcome")
			return summary, fmt.Errorf("failed to record outcome: %w", err)
		}
		summary.Add(result)
	}

	logger.Info().
		Int("redeemed", summary.Redeemed).
		Int("owned_skipped", summary.OwnedSkipped).
		Int("errored", summary.Errored).
		Msg("redemption run completed")

	return summary, nil
}

// Export writes the candidates and their ownership to the export file.
func (s *redemptionService) Export(ctx context.Context, entries []model.CandidateEntry, dir string) (string, error) {
	_, catalog, err := s.prepare(ctx)
	if err != nil {
		return "", err
	}

	path, err := outcome.Export(dir, entries, func(title string) bool {
		return s.matcher.Owned(catalog, title)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to export keys")
		return "", err
	}

	s.logger.Info().Str("path", path).Int("entries", len(entries)).Msg("keys exported")
	return path, nil
}

// prepare obtains a live session and the owned catalog.
func (s *redemptionService) prepare(ctx context.Context) (*session.Session, model.Catalog, error) {
	sess, err := session.Acquire(ctx, s.store)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to acquire session")
		return nil, nil, fmt.Errorf("failed to acquire session: %w", err)
	}

	catalog, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch owned catalog")
		return nil, nil, fmt.Errorf("failed to fetch owned catalog: %w", err)
	}

	return sess, catalog, nil
}
