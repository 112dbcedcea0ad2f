package catalog

import (
	"context"
	"fmt"

	"key-redeemer/internal/model"
	"key-redeemer/internal/steam"

	"github.com/rs/zerolog"
)

// Source lists the account's owned ids and the public app names.
type Source interface {
	OwnedContent(ctx context.Context) (*steam.UserData, error)
	AppList(ctx context.Context) ([]steam.App, error)
}

// Fetcher builds the owned-content catalog for the signed-in account.
type Fetcher struct {
	source Source
	logger zerolog.Logger
}

// NewFetcher creates a new catalog fetcher.
func NewFetcher(source Source, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: logger.With().Str("component", "catalog-fetcher").Logger(),
	}
}

// Fetch returns the names of every app whose id appears among the owned
// packages or owned apps.
func (f *Fetcher) Fetch(ctx context.Context) (model.Catalog, error) {
	owned, err := f.source.OwnedContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned content: %w", err)
	}

	ownedIDs := make(map[int]struct{}, len(owned.OwnedPackages)+len(owned.OwnedApps))
	for _, id := range owned.OwnedPackages {
		ownedIDs[id] = struct{}{}
	}
	for _, id := range owned.OwnedApps {
		ownedIDs[id] = struct{}{}
	}

	apps, err := f.source.AppList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app list: %w", err)
	}

	catalog := make(model.Catalog, len(ownedIDs))
	for _, app := range apps {
		if _, ok := ownedIDs[app.AppID]; ok {
			catalog[app.AppID] = app.Name
		}
	}

	f.logger.Info().
		Int("owned_ids", len(ownedIDs)).
		Int("app_list_size", len(apps)).
		Int("catalog_size", len(catalog)).
		Msg("owned catalog built")

	return catalog, nil
}
