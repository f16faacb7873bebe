package sleeper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/resilience"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL   = "https://api.sleeper.app/v1"
	defaultSport     = "nfl"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 8 << 20
)

var errNotFound = crerr.New("sleeper resource not found")

// statusError carries a non-2xx upstream response.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("sleeper status=%d body=%s", e.status, e.body)
}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Sport          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads leagues, drafts and picks from the public Sleeper API. It is safe for
// concurrent use.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	sport      string
	timeout    time.Duration
	retry      resilience.RetryPolicy
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "fantasy-league-hub",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sport := strings.TrimSpace(cfg.Sport)
	if sport == "" {
		sport = defaultSport
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		sport:      sport,
		timeout:    timeout,
		retry: resilience.RetryPolicy{
			Attempts:  max(cfg.MaxRetries, 0),
			BaseDelay: cfg.RetryBaseDelay,
			MaxDelay:  5 * time.Second,
			Retryable: isRetryable,
		},
		userAgent: strings.TrimSpace(cfg.UserAgent),
		logger:    logger.Named("sleeper"),
		breaker:   breaker,
	}
}

// getJSON fetches path and decodes it into target. A missing resource (404 or a JSON null
// body) yields found=false. Every other failure is marked as source unavailable.
func (c *Client) getJSON(ctx context.Context, path string, target any) (bool, error) {
	ctx, span := startSpan(ctx, "external.sleeper.getJSON")
	defer span.End()

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return false, adp.SourceUnavailable(err, "sleeper request %s", path)
	}

	// Joined callers share one fetch, so it must not inherit any single caller's
	// cancellation. Each fetch attempt is still bounded by c.timeout.
	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(path, func() (any, error) {
		var raw []byte
		reqErr := resilience.Retry(shared, c.retry, func(ctx context.Context) error {
			var fetchErr error
			raw, fetchErr = c.fetch(ctx, path)
			return fetchErr
		})
		if reqErr != nil && isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})

	var out any
	var err error
	select {
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return false, adp.SourceUnavailable(ctx.Err(), "sleeper request %s", path)
	case res := <-ch:
		out, err = res.Val, res.Err
	}
	if err != nil {
		if crerr.Is(err, errNotFound) {
			return false, nil
		}
		span.RecordError(err)
		c.logger.WarnContext(ctx, "sleeper request failed", "path", path, "error", err)
		return false, adp.SourceUnavailable(err, "sleeper request %s", path)
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, adp.SourceUnavailable(nil, "sleeper request %s: unexpected payload type %T", path, out)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if err := sonic.Unmarshal(trimmed, target); err != nil {
		return false, adp.SourceUnavailable(err, "decode sleeper payload %s", path)
	}

	return true, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.SetUserAgent(c.userAgent)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Wrapf(err, "send request")
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, errNotFound
	case status < 200 || status >= 300:
		return nil, &statusError{status: status, body: abbreviateBody(resp.Body())}
	}

	// resp is released on return, so the body must be copied out.
	return append([]byte(nil), resp.Body()...), nil
}

func isRetryable(err error) bool {
	if crerr.Is(err, errNotFound) || crerr.Is(err, context.Canceled) || crerr.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if crerr.As(err, &se) {
		return se.status == fasthttp.StatusTooManyRequests || se.status >= 500
	}
	return true
}

func isCircuitFailure(err error) bool {
	if crerr.Is(err, errNotFound) || crerr.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if crerr.As(err, &se) {
		return se.status == fasthttp.StatusTooManyRequests || se.status >= 500
	}
	return true
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		return body[:256] + "..."
	}
	return body
}

func escape(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}
