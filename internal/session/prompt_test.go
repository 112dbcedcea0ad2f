package session

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"key-redeemer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromptAuthenticator_Login(t *testing.T) {
	ctx := context.Background()
	expected := map[string]string{CookieLoginSecure: "secure-token", CookieSessionID: "abc123"}

	prober := new(MockProber)
	prober.On("SetCookies", expected).Return()
	prober.On("CheckLogin", ctx).Return(true, nil)

	var out bytes.Buffer
	auth := NewPromptAuthenticator(strings.NewReader("\n secure-token \nabc123\n"), &out, prober)

	sess, err := auth.Login(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, sess.Tokens())
	assert.Contains(t, out.String(), "steamLoginSecure: ")
	assert.Contains(t, out.String(), "sessionid: ")
}

func TestPromptAuthenticator_NotSignedIn(t *testing.T) {
	ctx := context.Background()

	prober := new(MockProber)
	prober.On("SetCookies", mock.Anything).Return()
	prober.On("CheckLogin", ctx).Return(false, nil)

	auth := NewPromptAuthenticator(strings.NewReader("secure\nabc\n"), &bytes.Buffer{}, prober)

	sess, err := auth.Login(ctx)

	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	assert.Nil(t, sess)
}

func TestPromptAuthenticator_InputClosed(t *testing.T) {
	auth := NewPromptAuthenticator(strings.NewReader("secure\n"), &bytes.Buffer{}, new(MockProber))

	sess, err := auth.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sessionid")
	assert.Nil(t, sess)
}
