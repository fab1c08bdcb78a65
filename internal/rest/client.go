package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const subsystem = "REST"

// ClientOptions configures a Client.
type ClientOptions struct {
	// Retry governs retries of state reads. Mutations are never retried
	// because toggling twice is not the same as toggling once.
	Retry   session.Policy
	Timeout time.Duration
	// OnFailedAttempt is called for every failed read attempt, retried or not.
	OnFailedAttempt func(err error)
	HTTPClient      *http.Client
}

// Client is a REST client for the bot backend.
type Client struct {
	base     *url.URL
	retrying *retryablehttp.Client
	single   *retryablehttp.Client
}

// APIError is a non-successful envelope or HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Message)
}

func NewClient(baseURL string, opts ClientOptions) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must be http or https", baseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		base:     u,
		retrying: newRetryable(opts, true),
		single:   newRetryable(opts, false),
	}
	return c, nil
}

func newRetryable(opts ClientOptions, retry bool) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.Logger = logging.LeveledLogger{Subsystem: subsystem}
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = 0

	if retry && opts.Retry.Enabled {
		policy := opts.Retry
		rc.RetryMax = policy.MaxAttempts
		rc.RetryWaitMin = policy.InitialDelay
		rc.RetryWaitMax = policy.MaxDelay
		rc.Backoff = func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
			return session.Backoff(policy, attemptNum+1, rand.Float64)
		}
	}

	onFailed := opts.OnFailedAttempt
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		shouldRetry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		if onFailed != nil && ctx.Err() == nil {
			switch {
			case err != nil:
				onFailed(err)
			case resp != nil && resp.StatusCode >= http.StatusInternalServerError:
				onFailed(&APIError{Status: resp.StatusCode})
			}
		}
		return shouldRetry, checkErr
	}
	return rc
}

// State fetches the current state, retrying per the client's policy.
func (c *Client) State(ctx context.Context) (bot.State, error) {
	return c.do(ctx, c.retrying, http.MethodGet, bot.PathState)
}

// StateOnce fetches the current state with a single attempt.
func (c *Client) StateOnce(ctx context.Context) (bot.State, error) {
	return c.do(ctx, c.single, http.MethodGet, bot.PathState)
}

func (c *Client) Enable(ctx context.Context) (bot.State, error) {
	return c.do(ctx, c.single, http.MethodPost, bot.PathEnable)
}

func (c *Client) Disable(ctx context.Context) (bot.State, error) {
	return c.do(ctx, c.single, http.MethodPost, bot.PathDisable)
}

func (c *Client) Toggle(ctx context.Context) (bot.State, error) {
	return c.do(ctx, c.single, http.MethodPost, bot.PathToggle)
}

// SetEnabled maps a desired enabled flag onto enable or disable.
func (c *Client) SetEnabled(ctx context.Context, enabled bool) (bot.State, error) {
	if enabled {
		return c.Enable(ctx)
	}
	return c.Disable(ctx)
}

func (c *Client) do(ctx context.Context, rc *retryablehttp.Client, method, path string) (bot.State, error) {
	u := *c.base
	u.Path += path

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return bot.State{}, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	logging.Debug(subsystem, "%s %s (request %s)", method, path, requestID)

	resp, err := rc.Do(req)
	if err != nil {
		return bot.State{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return bot.State{}, fmt.Errorf("reading %s response: %w", path, err)
	}

	var env bot.APIResponse[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return bot.State{}, &APIError{Status: resp.StatusCode}
		}
		return bot.State{}, fmt.Errorf("decoding %s response: %w", path, err)
	}
	if resp.StatusCode >= 400 || (!env.Success && env.Error != "") {
		return bot.State{}, &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if env.Data == nil {
		return bot.State{}, errors.New("response carries no state")
	}
	st, err := bot.DecodeState(*env.Data)
	if err != nil {
		return bot.State{}, err
	}
	logging.Debug(subsystem, "request %s: enabled=%t mode=%s", requestID, st.IsEnabled, st.Mode)
	return st, nil
}
