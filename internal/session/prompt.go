package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"key-redeemer/internal/model"
)

// promptAuthenticator asks the user for the cookies of a browser session that
// is already signed in to the store, then checks them.
type promptAuthenticator struct {
	in     *bufio.Reader
	out    io.Writer
	prober Prober
}

// NewPromptAuthenticator creates an Authenticator that reads cookie values
// from in and writes prompts to out.
func NewPromptAuthenticator(in io.Reader, out io.Writer, prober Prober) Authenticator {
	return &promptAuthenticator{
		in:     bufio.NewReader(in),
		out:    out,
		prober: prober,
	}
}

// Login prompts for the login and session cookies and verifies them.
func (a *promptAuthenticator) Login(ctx context.Context) (*Session, error) {
	fmt.Fprintln(a.out, "Sign in to the store in your browser, then copy these cookie values.")

	loginSecure, err := a.ask(CookieLoginSecure)
	if err != nil {
		return nil, err
	}
	sessionID, err := a.ask(CookieSessionID)
	if err != nil {
		return nil, err
	}

	sess := New(map[string]string{
		CookieLoginSecure: loginSecure,
		CookieSessionID:   sessionID,
	})

	a.prober.SetCookies(sess.tokens)
	ok, err := a.prober.CheckLogin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify login: %w", err)
	}
	if !ok {
		return nil, model.ErrNotAuthenticated
	}

	return sess, nil
}

func (a *promptAuthenticator) ask(name string) (string, error) {
	for {
		fmt.Fprintf(a.out, "%s: ", name)

		line, err := a.in.ReadString('\n')
		value := strings.TrimSpace(line)
		if value != "" {
			return value, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
}
