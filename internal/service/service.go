package service

import (
	"context"

	"key-redeemer/internal/model"
	"key-redeemer/internal/session"
)

// ConfirmFunc decides whether the key for title should be redeemed.
type ConfirmFunc func(title string) bool

// RedemptionService defines operations for a single redemption run.
type RedemptionService interface {
	// Run filters out owned titles and redeems the rest in order. A nil
	// confirm redeems every surviving entry.
	Run(ctx context.Context, entries []model.CandidateEntry, confirm ConfirmFunc) (*model.RunSummary, error)

	// Export writes the candidate list with an ownership column into dir and
	// returns the written path.
	Export(ctx context.Context, entries []model.CandidateEntry, dir string) (string, error)
}

// CatalogFetcher builds the owned-content catalog.
type CatalogFetcher interface {
	Fetch(ctx context.Context) (model.Catalog, error)
}

// OwnershipMatcher reports whether a title is already in the catalog.
type OwnershipMatcher interface {
	Owned(catalog model.Catalog, title string) bool
}

// Redeemer redeems one key.
type Redeemer interface {
	Redeem(ctx context.Context, sess *session.Session, entry model.CandidateEntry) (model.RedemptionOutcome, error)
}

// Recorder persists one outcome.
type Recorder interface {
	Record(outcome model.RedemptionOutcome) error
}
