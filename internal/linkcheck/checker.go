package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Config defines reachability checker settings
type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration // used when HTTPClient is nil
	// RequestsPerSecond paces checks; zero or negative disables pacing
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

// Checker checks vacancy links with a GET and expects a 2xx answer
type Checker struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

var _ domain.URLChecker = (*Checker)(nil)

// New builds a Checker
func New(cfg Config) *Checker {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Checker{
		httpClient: httpClient,
		limiter:    limiter,
		userAgent:  cfg.UserAgent,
	}
}

// Check returns a *domain.NetworkError when rawURL cannot be fetched successfully
func (c *Checker) Check(ctx context.Context, rawURL string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.NetworkError{URL: rawURL, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &domain.NetworkError{URL: rawURL, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{URL: rawURL, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return nil
}
