package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Prober checks whether the currently installed cookies are signed in.
type Prober interface {
	SetCookies(values map[string]string)
	CheckLogin(ctx context.Context) (bool, error)
}

// Authenticator obtains a fresh session interactively.
type Authenticator interface {
	Login(ctx context.Context) (*Session, error)
}

// persistedSession is the on-disk layout of the session file.
type persistedSession struct {
	Cookies map[string]string `json:"cookies"`
	SavedAt time.Time         `json:"savedAt"`
}

// fileStore implements Store on top of a local JSON file.
type fileStore struct {
	path   string
	prober Prober
	auth   Authenticator
	logger zerolog.Logger
}

// NewFileStore creates a session store persisted at path.
func NewFileStore(path string, prober Prober, auth Authenticator, logger zerolog.Logger) Store {
	return &fileStore{
		path:   path,
		prober: prober,
		auth:   auth,
		logger: logger.With().Str("component", "session-store").Logger(),
	}
}

// Restore loads the persisted session, treating any failure as a miss.
func (s *fileStore) Restore() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Debug().Err(err).Str("file", s.path).Msg("no saved session")
		return nil
	}

	var saved persistedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("saved session is corrupt")
		return nil
	}
	if len(saved.Cookies) == 0 {
		s.logger.Warn().Str("file", s.path).Msg("saved session has no cookies")
		return nil
	}

	s.logger.Debug().
		Str("file", s.path).
		Time("saved_at", saved.SavedAt).
		Msg("restored saved session")

	return New(saved.Cookies)
}

// Verify installs the session's cookies and checks the login page.
func (s *fileStore) Verify(ctx context.Context, sess *Session) bool {
	s.prober.SetCookies(sess.tokens)

	ok, err := s.prober.CheckLogin(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session verification failed")
		return false
	}
	if !ok {
		s.logger.Info().Msg("saved session is no longer signed in")
	}
	return ok
}

// Persist writes the session's cookies to disk.
func (s *fileStore) Persist(sess *Session) bool {
	data, err := json.MarshalIndent(persistedSession{
		Cookies: sess.tokens,
		SavedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode session")
		return false
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			s.logger.Warn().Err(err).Str("file", s.path).Msg("failed to create session directory")
			return false
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("failed to save session")
		return false
	}

	s.logger.Debug().Str("file", s.path).Msg("session saved")
	return true
}

// Login delegates to the authenticator. Failed attempts are not cached.
func (s *fileStore) Login(ctx context.Context) (*Session, error) {
	sess, err := s.auth.Login(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("interactive login failed")
		return nil, err
	}

	s.logger.Info().Msg("signed in")
	return sess, nil
}
