package foxapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/foxsms/internal/logging"
	"github.com/muurk/foxsms/internal/version"
)

const (
	// DefaultBaseURL is the service host
	DefaultBaseURL = "http://www.firefox.fun"

	// APIPath is the single endpoint every action is sent to
	APIPath = "/yhapi.ashx"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultRetries is the default number of retries after a transport failure
	DefaultRetries = 0

	// DefaultRetryDelay is the backoff unit: retry n waits n * RetryDelay
	DefaultRetryDelay = 1 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 4 << 20
)

// Config holds construction options. Zero values select the defaults.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// ConfigFromMillis builds a Config from a timeout in milliseconds.
func ConfigFromMillis(baseURL string, timeoutMs, retries int) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: time.Duration(timeoutMs) * time.Millisecond,
		Retries: retries,
	}
}

// Client talks to the service. It holds at most one session token; callers
// serialize workflows that share a client.
type Client struct {
	// BaseURL is the service root (e.g., "http://www.firefox.fun")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the number of retries after a transport failure
	MaxRetries int

	// RetryDelay is the linear backoff unit between retries
	RetryDelay time.Duration

	// UserAgent is sent with every request
	UserAgent string

	token string
}

// NewClient creates a client, applying defaults for unset options.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	} else if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	retries := cfg.Retries
	if retries < 0 {
		retries = DefaultRetries
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		MaxRetries: retries,
		RetryDelay: retryDelay,
		UserAgent:  userAgent,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// SetToken stores a session token, e.g. one saved from an earlier login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the stored session token ("" when none).
func (c *Client) Token() string {
	return c.token
}

// HasToken reports whether a session token is stored.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// ClearToken forgets the stored session token.
func (c *Client) ClearToken() {
	c.token = ""
}

// resolveToken picks the explicit token, falling back to the stored one.
func (c *Client) resolveToken(action Action, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.token != "" {
		return c.token, nil
	}
	recordOutcome(action, OutcomePrecondition)
	return "", NewNotLoggedInError(action)
}

// endpoint returns the full URL for a query string.
func (c *Client) endpoint(query string) string {
	return c.BaseURL + APIPath + "?" + query
}

// call performs one operation: request with retries, then envelope decode.
func (c *Client) call(ctx context.Context, action Action, p params) (*Envelope, error) {
	start := time.Now()
	defer func() { recordDuration(action, time.Since(start).Seconds()) }()

	body, err := c.do(ctx, action, p)
	if err != nil {
		if IsParseError(err) {
			recordOutcome(action, OutcomeParseError)
		} else {
			recordOutcome(action, OutcomeTransportError)
		}
		return nil, err
	}

	env := DecodeEnvelope(action, body)
	switch {
	case !env.Success:
		recordOutcome(action, OutcomeLogicalFailure)
	case action == ActionGetItem:
		// GetPriceList records the outcome once the JSON payload is decoded.
	default:
		recordOutcome(action, OutcomeSuccess)
	}
	return env, nil
}

// do sends the request, retrying transport failures with linear backoff.
// Attempt n (n >= 1 retries) waits n * RetryDelay first.
func (c *Client) do(ctx context.Context, action Action, p params) (string, error) {
	full := params{{key: "act", value: string(action)}}
	full = append(full, p...)
	query := full.encode()
	requestID := uuid.NewString()

	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}

	var lastErr *Error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay := c.RetryDelay * time.Duration(attempt)
			logging.LogRetry(requestID, string(action), attempt, delay, lastErr)
			recordRetry(action)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				lastErr = NewNetworkError(action, "request cancelled", ctx.Err())
				lastErr.Attempts = attempt
				return "", lastErr
			case <-timer.C:
			}
		}

		logging.LogAPIRequest(requestID, string(action), attempt+1, logParams(full))

		body, err := c.doAttempt(ctx, action, query, requestID)
		if err == nil {
			return body, nil
		}

		lastErr = err
		lastErr.Attempts = attempt + 1
		if !err.Retryable || ctx.Err() != nil {
			return "", lastErr
		}
	}

	lastErr.Message = fmt.Sprintf("request failed after %d attempts: %s", lastErr.Attempts, lastErr.Message)
	return "", lastErr
}

// doAttempt performs a single GET and returns the decoded body text.
func (c *Client) doAttempt(ctx context.Context, action Action, query, requestID string) (string, *Error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(query), nil)
	if err != nil {
		e := NewNetworkError(action, "failed to create request", err)
		e.Retryable = false
		return "", e
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", NewNetworkError(action, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", NewNetworkError(action, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", NewHTTPError(action, resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := decodeBody(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", NewParseError(action, "failed to decode response charset", err)
	}

	logging.LogAPIResponse(requestID, string(action), resp.StatusCode, body, time.Since(start))
	return body, nil
}

func logParams(p params) map[string]string {
	out := make(map[string]string, len(p))
	for _, kv := range p {
		out[kv.key] = logging.RedactParam(kv.key, kv.value)
	}
	return out
}
