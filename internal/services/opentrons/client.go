package opentrons

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"otctl/internal/logging"
	"otctl/internal/services"
)

const (
	versionHeader     = "Opentrons-Version"
	defaultAPIVersion = "*"
	defaultTimeout    = 30 * time.Second
	maxErrorBody      = 4096
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a single robot's HTTP API.
type Client struct {
	baseURL           string
	apiVersion        string
	httpClient        HTTPDoer
	logger            *slog.Logger
	waitUntilComplete bool
	commandTimeout    time.Duration
	createRun         bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIVersion sets the Opentrons-Version header value.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(version); v != "" {
			c.apiVersion = v
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "opentrons")
		}
	}
}

// WithWaitUntilComplete makes EnqueueCommand block until the robot finishes
// executing each command.
func WithWaitUntilComplete(wait bool) Option {
	return func(c *Client) {
		c.waitUntilComplete = wait
	}
}

// WithCommandTimeout bounds how long the robot waits for a command when
// waitUntilComplete is set. Zero leaves the robot default.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.commandTimeout = timeout
		}
	}
}

// WithCreateRunIfMissing makes run resolution create a run when the robot has
// no current run.
func WithCreateRunIfMissing(create bool) Option {
	return func(c *Client) {
		c.createRun = create
	}
}

// New creates a robot client for the given base URL (e.g. http://robot:31950).
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("robot base url required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse robot base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("robot base url %q must include scheme and host", baseURL)
	}
	client := &Client{
		baseURL:    baseURL,
		apiVersion: defaultAPIVersion,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the normalized robot endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(versionHeader, c.apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransient, "opentrons", method+" "+path, fmt.Sprintf("request failed (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("robot request",
		logging.String("method", method),
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Detail:     errorDetail(bodyBytes),
		}
		marker := services.ErrRemote
		if resp.StatusCode == http.StatusNotFound {
			marker = services.ErrNotFound
		}
		return fmt.Errorf("%w: %w", marker, apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
