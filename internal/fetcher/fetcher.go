package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// UserAgent identifies the analyzer to servers
	UserAgent = "TextAnalyzer/1.0"

	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps how much of a page is read
	DefaultMaxBodyBytes = 10 << 20

	// MaxRetries for failed requests
	MaxRetries = 3

	// BackoffBase for exponential backoff
	BackoffBase = time.Second

	maxBackoff = 30 * time.Second
)

// ErrBodyTooLarge is returned when a response exceeds the configured size
var ErrBodyTooLarge = errors.New("response body too large")

// Options configures a Fetcher
type Options struct {
	RequestsPerSecond float64 // 0 means no limit
	Timeout           time.Duration
	MaxBodyBytes      int64
	BackoffBase       time.Duration
}

// Page is a fetched document
type Page struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetcher handles HTTP requests with rate limiting and retries
type Fetcher struct {
	client       *http.Client
	rateLimiter  *rate.Limiter
	maxBodyBytes int64
	backoffBase  time.Duration
	logger       *slog.Logger
}

// New creates a new Fetcher
func New(opts Options, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = BackoffBase
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)+1)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &Fetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		rateLimiter:  limiter,
		maxBodyBytes: opts.MaxBodyBytes,
		backoffBase:  opts.BackoffBase,
		logger:       logger,
	}
}

// Fetch downloads url, retrying transport errors and 5xx responses
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			f.logger.Debug("retrying request", "url", url, "attempt", attempt+1, "max", MaxRetries)
			if err := f.backoff(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		page, retry, err := f.fetchOnce(ctx, url)
		if err == nil {
			return page, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", MaxRetries, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (*Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		// client errors are final, server errors are retried
		return nil, resp.StatusCode >= 500, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, false, fmt.Errorf("%s: %w (limit %d bytes)", url, ErrBodyTooLarge, f.maxBodyBytes)
	}

	f.logger.Debug("fetched", "url", url, "content_type", resp.Header.Get("Content-Type"), "bytes", len(body))

	return &Page{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, false, nil
}

// backoff waits with exponential growth, capped at maxBackoff
func (f *Fetcher) backoff(ctx context.Context, attempt int) error {
	wait := f.backoffBase * time.Duration(1<<uint(attempt))
	if wait > maxBackoff {
		wait = maxBackoff
	}

	f.logger.Debug("backing off", "wait", wait)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
