package keys

import (
	"context"
	"errors"
	"testing"

	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.CandidateEntry, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.CandidateEntry, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Entries := []model.CandidateEntry{{Title: "From S3", Key: "AAAAA-BBBBB-CCCCC"}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			assert.Equal(t, "candidates/keys.csv", path, "S3 key should have prefix")
			return s3Entries, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "candidates/", zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "keys.csv")
	require.NoError(t, err)
	assert.Equal(t, s3Entries, entries)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	localEntries := []model.CandidateEntry{{Title: "Local", Key: "DDDDD-EEEEE-FFFFF"}}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			assert.Equal(t, "keys.csv", path, "local file path should not have prefix")
			return localEntries, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "candidates/", zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "keys.csv")
	require.NoError(t, err)
	assert.Equal(t, localEntries, entries)
}

func TestFallbackLoader_NoS3Loader(t *testing.T) {
	called := false
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			called = true
			return nil, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "candidates/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "keys.csv")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CandidateEntry, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "candidates/", zerolog.Nop())

	entries, err := fallback.Load(context.Background(), "keys.csv")
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "file not found")
}
