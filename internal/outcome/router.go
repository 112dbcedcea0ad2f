package outcome

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"key-redeemer/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// File names of the bucket streams.
const (
	RedeemedFile     = "redeemed.csv"
	AlreadyOwnedFile = "already_owned.csv"
	ErroredFile      = "errored.csv"
)

// FileFor returns the file name backing a bucket.
func FileFor(bucket model.Bucket) string {
	switch bucket {
	case model.BucketRedeemed:
		return RedeemedFile
	case model.BucketAlreadyOwned:
		return AlreadyOwnedFile
	default:
		return ErroredFile
	}
}

// stream is one append-only bucket file.
type stream struct {
	file   *os.File
	writer *bufio.Writer
	// encoder is set when the file was empty on open and a byte order mark
	// is being written through it.
	encoder io.WriteCloser
}

// Router appends outcomes to the file for their bucket. Files are opened on
// first use and stay open until Close.
type Router struct {
	dir     string
	streams map[model.Bucket]*stream
	closed  bool
	logger  zerolog.Logger
}

// NewRouter creates a router writing into dir.
func NewRouter(dir string, logger zerolog.Logger) *Router {
	return &Router{
		dir:     dir,
		streams: make(map[model.Bucket]*stream),
		logger:  logger.With().Str("component", "outcome-router").Logger(),
	}
}

// Record writes one line for outcome and flushes it.
func (r *Router) Record(outcome model.RedemptionOutcome) error {
	if r.closed {
		return errors.New("outcome router is closed")
	}

	s, err := r.open(outcome.Bucket)
	if err != nil {
		return err
	}

	if _, err := s.writer.WriteString(FormatLine(outcome)); err != nil {
		return fmt.Errorf("failed to write outcome to %s: %w", FileFor(outcome.Bucket), err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", FileFor(outcome.Bucket), err)
	}

	r.logger.Debug().
		Str("file", FileFor(outcome.Bucket)).
		Int("status_code", outcome.StatusCode).
		Str("title", outcome.Title).
		Msg("outcome recorded")

	return nil
}

// Close closes every stream that was opened. It is safe to call twice.
func (r *Router) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	for bucket, s := range r.streams {
		if err := s.writer.Flush(); err != nil {
			errs = append(errs, err)
		}
		if s.encoder != nil {
			if err := s.encoder.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", FileFor(bucket), err))
		}
	}
	r.streams = nil

	return errors.Join(errs...)
}

func (r *Router) open(bucket model.Bucket) (*stream, error) {
	if s, ok := r.streams[bucket]; ok {
		return s, nil
	}

	path := filepath.Join(r.dir, FileFor(bucket))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		r.logger.Error().Err(err).Str("file", path).Msg("failed to open outcome file")
		return nil, fmt.Errorf("failed to open outcome file %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat outcome file %s: %w", path, err)
	}

	s := &stream{file: file}
	if info.Size() == 0 {
		s.encoder = transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
		s.writer = bufio.NewWriter(s.encoder)
	} else {
		s.writer = bufio.NewWriter(file)
	}
	r.streams[bucket] = s

	r.logger.Debug().Str("file", path).Msg("outcome file opened")

	return s, nil
}

// FormatLine renders an outcome as "key,title,key\n" with commas in the
// title replaced by periods.
func FormatLine(outcome model.RedemptionOutcome) string {
	title := strings.ReplaceAll(outcome.Title, ",", ".")
	return fmt.Sprintf("%s,%s,%s\n", outcome.Key, title, outcome.Key)
}
