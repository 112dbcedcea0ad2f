package session

import (
	"context"

	"key-redeemer/internal/model"
)

// Cookie names the store uses for the signed-in account.
const (
	CookieSessionID   = "sessionid"
	CookieLoginSecure = "steamLoginSecure"
)

// Session is an authenticated context bound to one store account.
type Session struct {
	tokens map[string]string
}

// New creates a session from a set of auth tokens. The map is copied.
func New(tokens map[string]string) *Session {
	copied := make(map[string]string, len(tokens))
	for name, value := range tokens {
		copied[name] = value
	}
	return &Session{tokens: copied}
}

// Tokens returns a copy of the session's auth tokens.
func (s *Session) Tokens() map[string]string {
	copied := make(map[string]string, len(s.tokens))
	for name, value := range s.tokens {
		copied[name] = value
	}
	return copied
}

// SessionID returns the anti-forgery token sent with state-changing requests.
func (s *Session) SessionID() (string, error) {
	id := s.tokens[CookieSessionID]
	if id == "" {
		return "", model.ErrMissingSessionID
	}
	return id, nil
}

// Store makes an authenticated session available across runs.
type Store interface {
	// Restore loads the persisted session. It returns nil when the store is
	// absent, unreadable or corrupt.
	Restore() *Session

	// Verify reports whether the session is still signed in. It only reads.
	Verify(ctx context.Context, sess *Session) bool

	// Persist saves the session. It returns false on any failure.
	Persist(sess *Session) bool

	// Login runs interactive authentication and returns a fresh session.
	Login(ctx context.Context) (*Session, error)
}

// Acquire returns a live session: the restored one if it verifies, otherwise
// a fresh login which is then persisted.
func Acquire(ctx context.Context, store Store) (*Session, error) {
	if sess := store.Restore(); sess != nil && store.Verify(ctx, sess) {
		return sess, nil
	}

	sess, err := store.Login(ctx)
	if err != nil {
		return nil, err
	}

	store.Persist(sess)
	return sess, nil
}
