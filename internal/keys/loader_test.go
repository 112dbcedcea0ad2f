package keys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestCandidateFile writes a candidate file into a temp dir.
func createTestCandidateFile(t *testing.T, filename, content string) string {
	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(FormatCSV, zerolog.Nop())
	filePath := createTestCandidateFile(t, "keys.csv", "Game A,AAAAA-BBBBB-CCCCC\nGame B,\n")

	entries, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, []model.CandidateEntry{
		{Title: "Game A", Key: "AAAAA-BBBBB-CCCCC"},
		{Title: "Game B", Key: ""},
	}, entries)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(FormatCSV, zerolog.Nop())

	entries, err := loader.Load(context.Background(), "/nonexistent/path/to/keys.csv")

	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "failed to open candidate file")
}

func TestFileLoader_Load_ParseError(t *testing.T) {
	loader := NewFileLoader(FormatYAML, zerolog.Nop())
	filePath := createTestCandidateFile(t, "keys.yaml", "title: [unclosed")

	entries, err := loader.Load(context.Background(), filePath)

	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "failed to parse candidate file")
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	loader := NewFileLoader(FormatCSV, zerolog.Nop())
	filePath := createTestCandidateFile(t, "keys.csv", "Game A,AAAAA-BBBBB-CCCCC\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := loader.Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)
}
