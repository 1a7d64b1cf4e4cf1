// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used when talking to the Zenn API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scrap2md/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FetchConfig holds settings for retrieving scraps.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Zenn origin (default "https://zenn.dev").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// CookieName is the session cookie that carries Token.
	CookieName string `json:"cookie_name" yaml:"cookie_name"`

	// Token authenticates requests for private scraps. Opaque; never logged.
	Token string `json:"-" yaml:"-"`
}

// ExportConfig holds settings for writing documents.
type ExportConfig struct {
	Render RenderOptions `json:"render" yaml:",inline"`

	// OutputDir is where <slug>.md files are written when no explicit
	// output path is given.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Title prepends "# <scrap title>" to the document.
	Title bool `json:"title" yaml:"title"`

	// Frontmatter prepends a YAML frontmatter block.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`
}

// CacheConfig holds settings for the local scrap cache.
type CacheConfig struct {
	// Dir is the directory holding scraps.db.
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached scrap stays fresh. Zero never expires.
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Disabled turns the cache off entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Config groups all settings for a scrap2md run.
type Config struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Export ExportConfig `json:"export" yaml:"export"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
}
