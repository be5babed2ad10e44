// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LLMConfig holds settings for the generation service.
type LLMConfig struct {
	// Provider selects the adapter: "anthropic" (default) or "openai".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the provider. Falls back to
	// .secrets/<provider>-api-key and then the provider's env var.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways, tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxTokens caps email and refinement responses (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// SummaryMaxTokens caps the news summary response (default 150).
	SummaryMaxTokens int `json:"summary_max_tokens" yaml:"summary_max_tokens"`

	// RequestsPerMinute throttles outgoing calls. Zero disables throttling.
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute"`

	// Burst is the limiter bucket size (default 2, one generate fan-out).
	Burst int `json:"burst" yaml:"burst"`

	// Timeout bounds a single call to the provider.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// NewsConfig holds settings for the news feed.
type NewsConfig struct {
	// FeedURL is the RSS search endpoint queried with the company name.
	FeedURL string `json:"feed_url" yaml:"feed_url"`

	// PreferredSources ranks matching publishers first. Empty means the
	// built-in list of financial outlets.
	PreferredSources []string `json:"preferred_sources,omitempty" yaml:"preferred_sources,omitempty"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent to the feed (e.g. "ir-outreach/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// OutreachConfig holds defaults applied to generate requests.
type OutreachConfig struct {
	// DefaultFirm is used when a request names no sender firm.
	DefaultFirm string `json:"default_firm" yaml:"default_firm"`

	// PromptVersion is the template family used when a request names none.
	PromptVersion string `json:"prompt_version" yaml:"prompt_version"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":3001").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// ArchiveConfig holds settings for the local draft archive.
type ArchiveConfig struct {
	// Enabled turns on recording of generated drafts by the CLI.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "ir-outreach.db").
	Path string `json:"path" yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level"`

	// File additionally appends log output to this path.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Config groups all settings.
type Config struct {
	LLM      LLMConfig      `json:"llm" yaml:"llm"`
	News     NewsConfig     `json:"news" yaml:"news"`
	Outreach OutreachConfig `json:"outreach" yaml:"outreach"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:         "anthropic",
			Model:            "claude-sonnet-4-5-20250929",
			MaxTokens:        1024,
			SummaryMaxTokens: 150,
			Burst:            2,
			Timeout:          60 * time.Second,
		},
		News: NewsConfig{
			FeedURL:    "https://news.google.com/rss/search",
			Timeout:    15 * time.Second,
			UserAgent:  "ir-outreach/0.1",
			MaxRetries: 3,
		},
		Outreach: OutreachConfig{
			DefaultFirm:   "Rivel Research Group",
			PromptVersion: "structured",
		},
		Server: ServerConfig{
			Addr: ":3001",
		},
		Archive: ArchiveConfig{
			Enabled: true,
			Path:    "ir-outreach.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
