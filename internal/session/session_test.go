package session

import (
	"context"
	"errors"
	"testing"

	"key-redeemer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Restore() *Session {
	args := m.Called()
	if sess, ok := args.Get(0).(*Session); ok {
		return sess
	}
	return nil
}

func (m *MockStore) Verify(ctx context.Context, sess *Session) bool {
	args := m.Called(ctx, sess)
	return args.Bool(0)
}

func (m *MockStore) Persist(sess *Session) bool {
	args := m.Called(sess)
	return args.Bool(0)
}

func (m *MockStore) Login(ctx context.Context) (*Session, error) {
	args := m.Called(ctx)
	if sess, ok := args.Get(0).(*Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSession_SessionID(t *testing.T) {
	sess := New(map[string]string{CookieSessionID: "abc"})
	id, err := sess.SessionID()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = New(nil).SessionID()
	assert.ErrorIs(t, err, model.ErrMissingSessionID)
}

func TestSession_TokensAreCopied(t *testing.T) {
	tokens := map[string]string{CookieSessionID: "abc"}
	sess := New(tokens)

	tokens[CookieSessionID] = "changed"
	assert.Equal(t, "abc", sess.Tokens()[CookieSessionID])

	out := sess.Tokens()
	out[CookieSessionID] = "changed"
	assert.Equal(t, "abc", sess.Tokens()[CookieSessionID])
}

func TestAcquire_RestoredSessionVerifies(t *testing.T) {
	ctx := context.Background()
	restored := New(map[string]string{CookieSessionID: "saved"})

	store := new(MockStore)
	store.On("Restore").Return(restored)
	store.On("Verify", ctx, restored).Return(true)

	sess, err := Acquire(ctx, store)

	require.NoError(t, err)
	assert.Same(t, restored, sess)
	store.AssertNotCalled(t, "Login", mock.Anything)
	store.AssertNotCalled(t, "Persist", mock.Anything)
}

func TestAcquire_NothingRestoredFallsBackToLogin(t *testing.T) {
	ctx := context.Background()
	fresh := New(map[string]string{CookieSessionID: "fresh"})

	store := new(MockStore)
	store.On("Restore").Return(nil)
	store.On("Login", ctx).Return(fresh, nil)
	store.On("Persist", fresh).Return(true)

	sess, err := Acquire(ctx, store)

	require.NoError(t, err)
	assert.Same(t, fresh, sess)
	store.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAcquire_DeadSessionFallsBackToLogin(t *testing.T) {
	ctx := context.Background()
	restored := New(map[string]string{CookieSessionID: "expired"})
	fresh := New(map[string]string{CookieSessionID: "fresh"})

	store := new(MockStore)
	store.On("Restore").Return(restored)
	store.On("Verify", ctx, restored).Return(false)
	store.On("Login", ctx).Return(fresh, nil)
	store.On("Persist", fresh).Return(true)

	sess, err := Acquire(ctx, store)

	require.NoError(t, err)
	assert.Same(t, fresh, sess)
	store.AssertExpectations(t)
}

func TestAcquire_PersistFailureDoesNotFailRun(t *testing.T) {
	ctx := context.Background()
	fresh := New(map[string]string{CookieSessionID: "fresh"})

	store := new(MockStore)
	store.On("Restore").Return(nil)
	store.On("Login", ctx).Return(fresh, nil)
	store.On("Persist", fresh).Return(false)

	sess, err := Acquire(ctx, store)

	require.NoError(t, err)
	assert.Same(t, fresh, sess)
}

func TestAcquire_LoginFailure(t *testing.T) {
	ctx := context.Background()
	loginErr := errors.New("login cancelled")

	store := new(MockStore)
	store.On("Restore").Return(nil)
	store.On("Login", ctx).Return(nil, loginErr)

	sess, err := Acquire(ctx, store)

	require.Error(t, err)
	assert.ErrorIs(t, err, loginErr)
	assert.Nil(t, sess)
	store.AssertNotCalled(t, "Persist", mock.Anything)
}
