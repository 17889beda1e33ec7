package harvest

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/fightlytics/cageharvest/internal/metrics"
)

// Fetcher retrieves a URL and returns its parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// SiteFetcher implements Fetcher using a Colly collector with a pooled
// transport shared across workers. Rate-limit responses are retried with
// exponential backoff; any other failure surfaces as a FetchError for the
// one URL.
type SiteFetcher struct {
	baseCollector *colly.Collector
	maxRetries    int
	baseBackoff   time.Duration
	logger        *zap.Logger
}

// NewSiteFetcher constructs a configured Colly-based Fetcher.
func NewSiteFetcher(cfg Config, logger *zap.Logger) (*SiteFetcher, error) {
	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	// Retries revisit the same URL with a fresh cloned collector.
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          128,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.RequestTimeout)

	return &SiteFetcher{
		baseCollector: base,
		maxRetries:    cfg.MaxRetries,
		baseBackoff:   cfg.BaseBackoff,
		logger:        logger,
	}, nil
}

// Fetch retrieves and parses a page. On HTTP 429 it retries up to the
// configured bound, sleeping base, 2*base, 4*base, ... between attempts,
// then issues one final unconditional attempt whose failure is returned
// as-is. The backoff sleep is interruptible by context cancellation.
func (f *SiteFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	backoff := f.baseBackoff
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		doc, err := f.attempt(ctx, rawURL)
		if !isRateLimited(err) {
			return doc, err
		}
		metrics.RateLimitHits.Inc()
		f.logger.Debug("rate limited, backing off",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
		)
		if err := sleepContext(ctx, backoff); err != nil {
			return nil, err
		}
		backoff *= 2
	}

	// Final attempt. A lingering 429 here becomes a per-item FetchError;
	// the caller must not retry it within this run.
	doc, err := f.attempt(ctx, rawURL)
	if isRateLimited(err) {
		return nil, &FetchError{URL: rawURL, StatusCode: http.StatusTooManyRequests, Err: err}
	}
	return doc, err
}

func (f *SiteFetcher) attempt(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	metrics.FetchAttempts.Inc()

	collector := f.baseCollector.Clone()
	var (
		body       []byte
		statusCode int
		fetchErr   error
	)
	collector.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
		fetchErr = err
	})

	if err := collector.Visit(rawURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if statusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if fetchErr != nil {
		metrics.FetchErrors.Inc()
		return nil, &FetchError{URL: rawURL, StatusCode: statusCode, Err: fetchErr}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: rawURL, StatusCode: statusCode, Err: err}
	}
	return doc, nil
}

func isRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// sleepContext sleeps for d unless the context finishes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
