package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"ffl-gateway-service/internal/metrics"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the upstream platform.
type Config struct {
	Host       string
	Year       int
	UserAgent  string
	HTTPClient *http.Client
	SessionTTL time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client issues requests against the upstream platform's HTTP API. It owns
// at most one active session; the token leaves the client only as the
// percent-encoded cookie attached to outgoing requests.
type Client struct {
	host       string
	year       int
	userAgent  string
	httpClient httpDoer
	sessionTTL time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time

	mu          sync.RWMutex
	session     *Session
	leagueHosts map[string]string
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		host:        resolveHost(cfg.Host),
		year:        resolveYear(cfg.Year),
		userAgent:   resolveUserAgent(cfg.UserAgent),
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		sessionTTL:  resolveSessionTTL(cfg.SessionTTL),
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		now:         time.Now,
		leagueHosts: make(map[string]string),
	}
}

// Body is a classified upstream response: JSON when the upstream said so,
// otherwise opaque text for callers that pattern-match (login's quasi-XML).
type Body struct {
	ContentType string
	Bytes       []byte
}

// IsJSON reports whether the upstream declared a JSON content type.
func (b *Body) IsJSON() bool {
	return b != nil && strings.Contains(b.ContentType, "application/json")
}

// Decode unmarshals a JSON body into out.
func (b *Body) Decode(out any) error {
	if !b.IsJSON() {
		return fmt.Errorf("upstream: expected JSON response, got %q", b.ContentType)
	}
	return json.Unmarshal(b.Bytes, out)
}

// Text returns the raw body as a string.
func (b *Body) Text() string {
	if b == nil {
		return ""
	}
	return string(b.Bytes)
}

// Get issues a GET for command against the default host.
func (c *Client) Get(ctx context.Context, command string, args map[string]string) (*Body, error) {
	return c.do(ctx, http.MethodGet, BuildURL(c.host, c.year, command, args), nil, command)
}

// GetHost issues a GET for command against a specific host, for
// league-scoped requests on multi-host deployments.
func (c *Client) GetHost(ctx context.Context, host, command string, args map[string]string) (*Body, error) {
	if host == "" {
		host = c.host
	}
	return c.do(ctx, http.MethodGet, BuildURL(host, c.year, command, args), nil, command)
}

// PostForm issues a URL-encoded POST for command against the default host.
func (c *Client) PostForm(ctx context.Context, command string, form url.Values) (*Body, error) {
	return c.do(ctx, http.MethodPost, BuildURL(c.host, c.year, command, nil), form, command)
}

func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values, command string) (*Body, error) {
	start := time.Now()
	body, err := c.roundTrip(ctx, method, rawURL, form, command)
	c.metrics.RecordUpstreamAttempt(command, time.Since(start), err)
	if rlErr, ok := AsRateLimitError(err); ok {
		c.metrics.RecordRateLimit(command, rlErr.RetryAfter)
	}
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, method, rawURL string, form url.Values, command string) (*Body, error) {
	var reader io.Reader
	var encoded string
	if form != nil {
		encoded = form.Encode()
		reader = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.ContentLength = int64(len(encoded))
	}
	// The cookie is attached only when a live session exists; an empty or
	// placeholder cookie is never sent.
	if token, ok := c.sessionToken(); ok {
		req.Header.Set("Cookie", SessionCookie+"="+url.QueryEscape(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Command: command, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			Command:    command,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		reason := strings.TrimSpace(string(snippet))
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return nil, &ServerError{Command: command, StatusCode: resp.StatusCode, Reason: reason}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Command: command, Err: err}
	}
	return &Body{ContentType: resp.Header.Get("Content-Type"), Bytes: data}, nil
}

// Host returns the default upstream host the client talks to.
func (c *Client) Host() string {
	return c.host
}

// LeagueHost resolves the host serving a league, memoized for the life of
// the client so it is looked up once and reused for every league-scoped
// request.
func (c *Client) LeagueHost(ctx context.Context, leagueID string) (string, error) {
	c.mu.RLock()
	host, ok := c.leagueHosts[leagueID]
	c.mu.RUnlock()
	if ok {
		return host, nil
	}

	league, err := c.FetchLeague(ctx, leagueID)
	if err != nil {
		return "", err
	}
	host = normalizeHost(league.Host)
	if host == "" {
		host = c.host
	}

	c.mu.Lock()
	hosts := make(map[string]string, len(c.leagueHosts)+1)
	for id, h := range c.leagueHosts {
		hosts[id] = h
	}
	hosts[leagueID] = host
	c.leagueHosts = hosts
	c.mu.Unlock()
	return host, nil
}

func (c *Client) sessionToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil || !c.session.Active(c.now()) {
		return "", false
	}
	return c.session.token, true
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func resolveHost(host string) string {
	if host == "" {
		return defaultHost
	}
	return normalizeHost(host)
}

func resolveYear(year int) int {
	if year <= 0 {
		return time.Now().Year()
	}
	return year
}

func resolveUserAgent(ua string) string {
	if ua == "" {
		return defaultUserAgent
	}
	return ua
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func resolveSessionTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}
