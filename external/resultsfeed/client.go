package resultsfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 4 << 20
)

var errResultsFeedTransient = crerr.New("results feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	MaxBodyBytes   int64
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads raw event result pages. It only fetches; parsing stays in
// the ingest package so pasted and fetched content go through the same path.
type Client struct {
	httpClient     *http.Client
	maxRetries     int
	maxBodyBytes   int64
	userAgent      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		maxBodyBytes:   maxBodyBytes,
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchRaw downloads the page at rawURL and returns its body as text.
// Concurrent fetches of the same URL are collapsed into one request.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("url host cannot be empty")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "results feed circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: results feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(rawURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, rawURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errResultsFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}

	return string(raw), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/html, text/plain")
		if c.userAgent != "" {
			req.Header.Set("user-agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errResultsFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errResultsFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: page status=%d body=%s", errResultsFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("page status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("page request failed")
	}
	c.logger.WarnContext(ctx, "results feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 256 {
		return text[:256] + "..."
	}
	return text
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
