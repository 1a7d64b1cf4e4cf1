// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrap retrieves Zenn scraps and flattens their comment threads
// into ordered messages.
package scrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scrap2md/internal/httputil"
	"github.com/pdiddy/scrap2md/pkg/types"
)

const (
	DefaultBaseURL    = "https://zenn.dev"
	DefaultCookieName = "remember_user_token"
	DefaultUserAgent  = "scrap2md/0.1"
	DefaultTimeout    = 30 * time.Second
)

// Fetcher retrieves a scrap by slug.
type Fetcher interface {
	Fetch(ctx context.Context, slug string) (*types.Scrap, error)
}

// StatusError reports a non-200 response from the Zenn API.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Zenn API returned HTTP %d for %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err means the scrap is missing or not visible
// without authentication.
func IsNotFound(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.StatusCode {
	case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// Client fetches scraps from the Zenn API.
type Client struct {
	HTTP   *http.Client
	Config types.FetchConfig
}

// NewClient returns a Client with defaults applied to unset fields of cfg.
func NewClient(cfg types.FetchConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

// BlobURL returns the API endpoint serving the scrap's JSON.
func (c *Client) BlobURL(slug string) string {
	return BlobURL(c.Config.BaseURL, slug)
}

// BlobURL returns the API endpoint for slug under the Zenn origin base.
func BlobURL(base, slug string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/api/scraps/" + url.PathEscape(slug) + "/blob.json"
}

// Fetch downloads and decodes the scrap identified by slug. When a token is
// configured it is sent as a session cookie.
func (c *Client) Fetch(ctx context.Context, slug string) (*types.Scrap, error) {
	start := time.Now()
	apiURL := c.BlobURL(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.Config.Token != "" {
		req.AddCookie(&http.Cookie{Name: c.Config.CookieName, Value: c.Config.Token})
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching scrap %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: apiURL}
	}

	var s types.Scrap
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scrap %s: %w", slug, err)
	}
	s.Slug = slug

	slog.Debug("fetched scrap",
		"slug", slug,
		"comments", len(s.Comments),
		"authenticated", c.Config.Token != "",
		"elapsed", time.Since(start),
	)
	return &s, nil
}
