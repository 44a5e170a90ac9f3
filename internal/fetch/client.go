package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khdl/khinsider-dl/internal/khinsider"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxAttempts = 5
	defaultBackoff     = 500 * time.Millisecond
	defaultUserAgent   = "khinsider-dl"
)

// notFoundMarker is the text khinsider serves, with status 200, on its
// missing-object page.
const notFoundMarker = "Ooops!"

// StatusError is a non-2xx response surfaced as an error. 5xx count as
// transient, 4xx do not.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.URL)
}

// IsTransient reports whether err is a network-layer failure worth
// retrying: timeouts, connection resets/refusals, truncated bodies, and
// 5xx responses. Definitive outcomes (ErrNotFound, ErrInvalidURL, 4xx)
// and caller cancellation are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, khinsider.ErrNotFound) || errors.Is(err, khinsider.ErrInvalidURL) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	var oe *net.OpError
	return errors.As(err, &oe)
}

// Client wraps an *http.Client with the downloader's request policy:
// a stable User-Agent, an overall timeout, not-found detection, and
// bounded retry on transient failures.
type Client struct {
	http        *http.Client
	log         *zap.SugaredLogger
	userAgent   string
	maxAttempts int
	backoff     time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithMaxAttempts sets the retry ceiling, counting the first attempt.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the base delay between attempts; attempt n waits
// n times the base.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		http:        &http.Client{Timeout: defaultTimeout},
		log:         logger.Sugar(),
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchPage retrieves an HTML page. A page carrying the site's
// missing-object marker reports khinsider.ErrNotFound; that is a
// definitive answer and is not retried.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, err := c.getWithRetry(ctx, "fetch page", pageURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(string(body), notFoundMarker) {
		err := fmt.Errorf("%w: %s", khinsider.ErrNotFound, pageURL)
		c.log.Warnw("request failed", "op", "fetch page", "url", pageURL, "err", err)
		return "", err
	}
	return string(body), nil
}

// Download retrieves the file at fileURL into memory and returns its
// bytes.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	return c.getWithRetry(ctx, "download", fileURL)
}

// getWithRetry runs GET up to maxAttempts times, backing off between
// transient failures. The last transient error is surfaced unchanged.
func (c *Client) getWithRetry(ctx context.Context, op, target string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.get(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !IsTransient(err) {
			c.log.Errorw("request failed", "op", op, "url", target, "err", err)
			return nil, err
		}
		c.log.Warnw("transient request failure",
			"op", op, "url", target,
			"attempt", attempt, "max", c.maxAttempts, "err", err)

		if attempt == c.maxAttempts {
			break
		}
		if sleepErr := sleep(ctx, c.backoff*time.Duration(attempt)); sleepErr != nil {
			break
		}
	}
	c.log.Errorw("retries exhausted", "op", op, "url", target, "attempts", c.maxAttempts, "err", lastErr)
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", khinsider.ErrNotFound, rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	return io.ReadAll(resp.Body)
}

// sleep waits for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
