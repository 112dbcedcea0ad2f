package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	registerKeyPagePath = "/account/registerkey"
	registerKeyAPIPath  = "/account/ajaxregisterkey/"
	userDataPath        = "/dynamicstore/userdata/"
	appListPath         = "/ISteamApps/GetAppList/v2/"
)

var tracer = otel.Tracer("key-redeemer/internal/steam")

// ErrTransport wraps failures to reach the store or to decode its reply.
var ErrTransport = errors.New("store request failed")

// ClientConfig configures the store client.
type ClientConfig struct {
	// StoreBaseURL serves the account pages, key registration and user data.
	StoreBaseURL string

	// APIBaseURL serves the public app list.
	APIBaseURL string

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// RateLimit requests per second (default: 0.5).
	RateLimit float64

	// RateBurst maximum burst size (default: 1).
	RateBurst int

	// UserAgent string (default: "key-redeemer/1.0").
	UserAgent string

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper
}

// DefaultClientConfig returns a client config pointing at the public store.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		StoreBaseURL: "https://store.steampowered.com",
		APIBaseURL:   "https://api.steampowered.com",
		Timeout:      30 * time.Second,
		RateLimit:    0.5,
		RateBurst:    1,
		UserAgent:    "key-redeemer/1.0",
	}
}

// Client is a rate-limited client for the store endpoints the redeemer
// uses. It keeps the account cookies in its jar and never follows redirects.
type Client struct {
	config      *ClientConfig
	storeURL    *url.URL
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

// NewClient creates a new store client with the given configuration.
func NewClient(config *ClientConfig, logger zerolog.Logger) (*Client, error) {
	defaults := DefaultClientConfig()
	if config == nil {
		config = defaults
	}
	if config.StoreBaseURL == "" {
		config.StoreBaseURL = defaults.StoreBaseURL
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaults.APIBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.RateBurst == 0 {
		config.RateBurst = defaults.RateBurst
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	storeURL, err := url.Parse(config.StoreBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid store base URL %q: %w", config.StoreBaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		config:   config,
		storeURL: storeURL,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
			Jar:       jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		logger:      logger.With().Str("component", "steam-client").Logger(),
	}, nil
}

// SetCookies installs the given cookie values for the store host.
func (c *Client) SetCookies(values map[string]string) {
	cookies := make([]*http.Cookie, 0, len(values))
	for name, value := range values {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.httpClient.Jar.SetCookies(c.storeURL, cookies)
}

// Cookies returns the cookie values currently held for the store host.
func (c *Client) Cookies() map[string]string {
	values := make(map[string]string)
	for _, cookie := range c.httpClient.Jar.Cookies(c.storeURL) {
		values[cookie.Name] = cookie.Value
	}
	return values
}

// CheckLogin requests an account-only page. A redirect means the session is
// not signed in; a 200 means it is.
func (c *Client) CheckLogin(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, c.config.StoreBaseURL+registerKeyPagePath, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusMovedPermanently, http.StatusFound:
		c.logger.Debug().
			Str("location", resp.Header.Get("Location")).
			Msg("login check redirected")
		return false, nil
	default:
		c.logger.Warn().Int("status", resp.StatusCode).Msg("unexpected login check status")
		return false, nil
	}
}

// RegisterKey submits a product key with the session's anti-forgery token.
func (c *Client) RegisterKey(ctx context.Context, key, sessionID string) (*RegisterKeyResponse, error) {
	form := url.Values{}
	form.Set("product_key", key)
	form.Set("sessionid", sessionID)

	var out RegisterKeyResponse
	if err := c.doJSON(ctx, http.MethodPost, c.config.StoreBaseURL+registerKeyAPIPath, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OwnedContent returns the package and app ids owned by the signed-in account.
func (c *Client) OwnedContent(ctx context.Context) (*UserData, error) {
	var out UserData
	if err := c.doJSON(ctx, http.MethodGet, c.config.StoreBaseURL+userDataPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AppList returns every public app id and name.
func (c *Client) AppList(ctx context.Context) ([]App, error) {
	var out appListResponse
	if err := c.doJSON(ctx, http.MethodGet, c.config.APIBaseURL+appListPath, nil, &out); err != nil {
		return nil, err
	}
	return out.AppList.Apps, nil
}

func (c *Client) doJSON(ctx context.Context, method, rawURL string, form url.Values, target any) error {
	resp, err := c.do(ctx, method, rawURL, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrTransport, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("url", rawURL).
			Int("status", resp.StatusCode).
			Msg("store returned non-success status")
		return fmt.Errorf("%w: %s returned status %d", ErrTransport, rawURL, resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.Error().Err(err).Str("url", rawURL).Msg("failed to decode store response")
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, rawURL, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values) (*http.Response, error) {
	ctx, span := tracer.Start(ctx, "steam.request")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", rawURL),
	)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate limiter")
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Error().Err(err).Str("method", method).Str("url", rawURL).Msg("store request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, rawURL, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug().
		Str("method", method).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("store request completed")

	return resp, nil
}
