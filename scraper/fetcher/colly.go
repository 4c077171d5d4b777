// Package fetcher retrieves raw listing pages over plain HTTP.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"listing-monitor/apperr"
	"listing-monitor/utils"
)

// CollyFetcher issues single GET requests through a fresh colly collector.
type CollyFetcher struct {
	logger    *utils.Logger
	timeout   time.Duration
	transport http.RoundTripper
}

// NewCollyFetcher returns a fetcher whose requests give up after timeout.
func NewCollyFetcher(timeout time.Duration, logger *utils.Logger) *CollyFetcher {
	return &CollyFetcher{
		logger:    logger,
		timeout:   timeout,
		transport: http.DefaultTransport,
	}
}

// contextTransport binds every outgoing request to the caller's context so
// cancellation reaches the connection.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// Fetch implements scraper.Fetcher.
func (f *CollyFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(f.timeout)
	c.WithTransport(&contextTransport{ctx: ctx, base: f.transport})

	var (
		body   []byte
		status int
	)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	f.logger.Debug("[fetch] GET %s", url)
	err := c.Visit(url)
	if err == nil {
		return body, status, nil
	}

	if status != 0 && (status < 200 || status > 299) {
		return nil, status, &apperr.UpstreamHTTPError{Status: status, URL: url}
	}
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, 0, &apperr.UpstreamTimeoutError{Op: "fetch", Err: err}
	}
	return nil, status, apperr.Timeout("fetch", fmt.Errorf("fetch %s: %w", url, err))
}
