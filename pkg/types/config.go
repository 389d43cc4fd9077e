// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "quantcoder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the article-index search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of records to return (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableCrossRef controls whether the CrossRef backend is used.
	EnableCrossRef bool `json:"enable_crossref" yaml:"enable_crossref"`

	// EnableOpenAlex controls whether the OpenAlex backend is used.
	EnableOpenAlex bool `json:"enable_openalex" yaml:"enable_openalex"`

	// MailTo is the contact address sent to polite-pool APIs (CrossRef,
	// OpenAlex). Optional.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// InterBackendDelay is the delay between calls to different backends.
	InterBackendDelay time.Duration `json:"inter_backend_delay" yaml:"inter_backend_delay"`
}

// DownloadConfig holds settings for the PDF download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadsDir is the directory PDFs are written to.
	DownloadsDir string `json:"downloads_dir" yaml:"downloads_dir"`

	// UnpaywallEmail is the contact address required by the Unpaywall
	// open-access lookup. When empty the Unpaywall fallback is skipped.
	UnpaywallEmail string `json:"unpaywall_email,omitempty" yaml:"unpaywall_email,omitempty"`
}

// LLMConfig holds shared settings for stages that call a language model.
type LLMConfig struct {
	// Provider selects the model provider: "openai" or "anthropic".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-2024-11-20").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxRetries is the number of retry attempts for transient API
	// failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds each completion HTTP request (default 120s).
	// Generation calls run much longer than the other stages' requests.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ExtractionConfig holds settings for the strategy-extraction stage.
type ExtractionConfig struct {
	LLMConfig `yaml:",inline"`

	// MaxPromptChars truncates the paper text embedded in the prompt.
	// The head of the text is kept. Default 48000.
	MaxPromptChars int `json:"max_prompt_chars" yaml:"max_prompt_chars"`
}

// GenerationConfig holds settings for the code-generation stage.
type GenerationConfig struct {
	LLMConfig `yaml:",inline"`

	// OutputDir is the directory generated algorithms are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxRefineAttempts bounds the validate-and-refine loop (default 6).
	MaxRefineAttempts int `json:"max_refine_attempts" yaml:"max_refine_attempts"`
}

// UsageConfig holds settings for the token-usage ledger.
type UsageConfig struct {
	// Path is the SQLite database file (default "usage.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Download   DownloadConfig   `json:"download" yaml:"download"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Usage      UsageConfig      `json:"usage" yaml:"usage"`
}
