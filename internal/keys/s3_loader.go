package keys

import (
	"context"
	"fmt"

	"key-redeemer/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Options configures the S3 candidate loader.
type S3Options struct {
	Bucket string
	Region string
	// Endpoint overrides the S3 endpoint, e.g. for MinIO. Path-style
	// addressing is used when set.
	Endpoint string
	// AccessKey and SecretKey, when both set, replace the default
	// credential chain.
	AccessKey string
	SecretKey string
}

// s3Loader implements Loader for reading candidate lists from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	format Format
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based candidate loader.
func NewS3Loader(ctx context.Context, opts S3Options, format Format, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-candidate-loader").Logger()

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info().
		Str("bucket", opts.Bucket).
		Str("region", opts.Region).
		Str("endpoint", opts.Endpoint).
		Msg("S3 loader initialised")

	return &s3Loader{
		client: client,
		bucket: opts.Bucket,
		format: format,
		logger: logger,
	}, nil
}

// Load reads a candidate list from S3. The key parameter is the full
// object key, including any prefix.
func (l *s3Loader) Load(ctx context.Context, key string) ([]model.CandidateEntry, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading candidate file from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	entries, err := Parse(result.Body, l.format)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to parse candidate file from S3")
		return nil, fmt.Errorf("failed to parse candidate file from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("candidates_loaded", len(entries)).
		Msg("candidate file loaded successfully from S3")

	return entries, nil
}

// fallbackLoader tries S3 first, then falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to
// the local file system. If s3Loader is nil only the file loader is used.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load attempts S3 with the prefix prepended, then the local path as-is.
func (l *fallbackLoader) Load(ctx context.Context, filePath string) ([]model.CandidateEntry, error) {
	if l.s3Loader != nil {
		s3Key := l.s3Prefix + filePath

		entries, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			return entries, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load from S3, falling back to local file system")
	} else {
		l.logger.Debug().Msg("S3 not configured, using local file system")
	}

	return l.fileLoader.Load(ctx, filePath)
}
