package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"key-redeemer/internal/keys"
	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "candidate-keys"

func newMinioLoader(t *testing.T, testS3 *TestS3, format keys.Format) keys.Loader {
	t.Helper()

	loader, err := keys.NewS3Loader(context.Background(), keys.S3Options{
		Bucket:    testBucket,
		Region:    minioRegion,
		Endpoint:  testS3.Endpoint,
		AccessKey: minioAccessKey,
		SecretKey: minioSecretKey,
	}, format, zerolog.Nop())
	require.NoError(t, err)
	return loader
}

func TestS3Loader_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testS3 := SetupTestS3(t)
	testS3.CreateBucket(t, testBucket)
	testS3.PutObject(t, testBucket, "keys/bundle.csv", []byte(
		"Game Title,Steam Key\nPortal 2,AAAAA-BBBBB-CCCCC\n\"Foo, Bar\",DDDDD-EEEEE-FFFFF\n",
	))
	testS3.PutObject(t, testBucket, "keys/bundle.yaml", []byte(
		"- title: Portal 2\n  key: AAAAA-BBBBB-CCCCC\n",
	))

	t.Run("CSV object", func(t *testing.T) {
		loader := newMinioLoader(t, testS3, keys.FormatCSV)

		entries, err := loader.Load(context.Background(), "keys/bundle.csv")

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, model.CandidateEntry{Title: "Portal 2", Key: "AAAAA-BBBBB-CCCCC"}, entries[0])
	})

	t.Run("YAML object", func(t *testing.T) {
		loader := newMinioLoader(t, testS3, keys.FormatYAML)

		entries, err := loader.Load(context.Background(), "keys/bundle.yaml")

		require.NoError(t, err)
		assert.Equal(t, []model.CandidateEntry{{Title: "Portal 2", Key: "AAAAA-BBBBB-CCCCC"}}, entries)
	})

	t.Run("Missing object", func(t *testing.T) {
		loader := newMinioLoader(t, testS3, keys.FormatCSV)

		_, err := loader.Load(context.Background(), "keys/missing.csv")

		assert.Error(t, err)
	})

	t.Run("Fallback to local file", func(t *testing.T) {
		dir := t.TempDir()
		local := filepath.Join(dir, "local.csv")
		require.NoError(t, os.WriteFile(local, []byte("Local Game,GGGGG-HHHHH-IIIII\n"), 0o644))

		loader := keys.NewFallbackLoader(
			newMinioLoader(t, testS3, keys.FormatCSV),
			keys.NewFileLoader(keys.FormatCSV, zerolog.Nop()),
			"keys/",
			zerolog.Nop(),
		)

		entries, err := loader.Load(context.Background(), local)

		require.NoError(t, err)
		assert.Equal(t, []model.CandidateEntry{{Title: "Local Game", Key: "GGGGG-HHHHH-IIIII"}}, entries)
	})

	t.Run("Prefixed S3 key wins over local file", func(t *testing.T) {
		loader := keys.NewFallbackLoader(
			newMinioLoader(t, testS3, keys.FormatCSV),
			keys.NewFileLoader(keys.FormatCSV, zerolog.Nop()),
			"keys/",
			zerolog.Nop(),
		)

		entries, err := loader.Load(context.Background(), "bundle.csv")

		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
