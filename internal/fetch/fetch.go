// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fetch retrieves single job-posting pages. It sends
// browser-like headers because many job boards serve bot-detection
// pages to generic HTTP clients.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Page is a fetched job-posting page.
type Page struct {
	URL        string
	Title      string
	HTML       string
	StatusCode int
}

// StatusError reports a non-success HTTP status from the upstream site,
// so handlers can propagate it instead of masking it as a 500.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: upstream status %d", e.URL, e.StatusCode)
}

// Config holds fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher downloads one page per call. No link following, no depth.
type Fetcher struct {
	config Config
}

// New creates a Fetcher with the given configuration.
func New(config Config) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	return &Fetcher{config: config}
}

// Fetch retrieves the page at pageURL. A reachable page with an error
// status returns a *StatusError carrying the upstream status code. The
// title falls back to "untitled" when the page has none.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (Page, error) {
	page := Page{URL: pageURL, Title: "untitled"}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.HTML = string(r.Body)
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title := strings.TrimSpace(e.Text); title != "" && page.Title == "untitled" {
			page.Title = title
		}
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		page.StatusCode = r.StatusCode
		if r.Body != nil {
			page.HTML = string(r.Body)
		}
		if r.StatusCode > 0 {
			fetchErr = &StatusError{URL: pageURL, StatusCode: r.StatusCode}
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", pageURL, err)
	})

	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	c.Wait()

	if ctx.Err() != nil {
		return page, fmt.Errorf("fetch %s: %w", pageURL, ctx.Err())
	}
	if fetchErr != nil {
		slog.Debug("page fetch failed", "url", pageURL, "status", page.StatusCode, "error", fetchErr)
		return page, fetchErr
	}

	slog.Debug("page fetched", "url", pageURL, "status", page.StatusCode, "title", page.Title, "size", len(page.HTML))
	return page, nil
}
