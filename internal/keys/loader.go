package keys

import (
	"context"
	"fmt"
	"os"

	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for candidate lists on the local file system.
type fileLoader struct {
	format Format
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based candidate loader.
func NewFileLoader(format Format, logger zerolog.Logger) Loader {
	return &fileLoader{
		format: format,
		logger: logger.With().Str("component", "candidate-loader").Logger(),
	}
}

// Load reads a candidate list from filePath.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.CandidateEntry, error) {
	l.logger.Info().Str("file", filePath).Str("format", string(l.format)).Msg("loading candidate file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open candidate file")
		return nil, fmt.Errorf("failed to open candidate file %s: %w", filePath, err)
	}
	defer file.Close()

	entries, err := Parse(file, l.format)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse candidate file")
		return nil, fmt.Errorf("failed to parse candidate file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("candidates_loaded", len(entries)).
		Msg("candidate file loaded successfully")

	return entries, nil
}
