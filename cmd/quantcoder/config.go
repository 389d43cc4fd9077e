// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/internal/usage"
	"github.com/quantcoder/quantcoder/pkg/types"
)

const (
	articlesFile = "articles.json"
	downloadsDir = "downloads"
	generatedDir = "generated"

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "quantcoder/0.1"

	defaultOpenAIModel    = "gpt-4o-2024-11-20"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// secretDefault returns value if non-empty, then the environment
// variable, then the secrets-file value, then "".
func secretDefault(value, envVar, secretValue string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return secretValue
}

// httpConfig builds the shared HTTP settings, letting config override
// the defaults.
func httpConfig() types.HTTPConfig {
	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ua := viper.GetString("http.user_agent")
	if ua == "" {
		ua = defaultUserAgent
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: ua}
}

// searchConfig builds the search stage settings.
func searchConfig() types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig:        httpConfig(),
		MaxResults:        viper.GetInt("search.max_results"),
		EnableCrossRef:    true,
		EnableOpenAlex:    viper.GetBool("search.enable_openalex"),
		MailTo:            secretDefault(viper.GetString("search.mailto"), "UNPAYWALL_EMAIL", loadedSecrets.UnpaywallEmail()),
		InterBackendDelay: viper.GetDuration("search.inter_backend_delay"),
	}
	if viper.IsSet("search.enable_crossref") {
		cfg.EnableCrossRef = viper.GetBool("search.enable_crossref")
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 5
	}
	if cfg.InterBackendDelay == 0 {
		cfg.InterBackendDelay = time.Second
	}
	return cfg
}

// downloadConfig builds the download stage settings.
func downloadConfig() types.DownloadConfig {
	dir := viper.GetString("download.downloads_dir")
	if dir == "" {
		dir = downloadsDir
	}
	return types.DownloadConfig{
		HTTPConfig:     httpConfig(),
		DownloadsDir:   dir,
		UnpaywallEmail: secretDefault(viper.GetString("download.unpaywall_email"), "UNPAYWALL_EMAIL", loadedSecrets.UnpaywallEmail()),
	}
}

// llmConfig builds the shared model settings. The API key resolves from
// config, then provider-specific env var, then the secrets directory.
func llmConfig() types.LLMConfig {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	model := viper.GetString("llm.model")
	if model == "" {
		if provider == "anthropic" {
			model = defaultAnthropicModel
		} else {
			model = defaultOpenAIModel
		}
	}

	envVar, secretValue := "OPENAI_API_KEY", loadedSecrets.OpenAIAPIKey()
	if provider == "anthropic" {
		envVar, secretValue = "ANTHROPIC_API_KEY", loadedSecrets.AnthropicAPIKey()
	}

	cfg := types.LLMConfig{
		Provider:    provider,
		Model:       model,
		APIKey:      secretDefault(viper.GetString("llm.api_key"), envVar, secretValue),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	if !viper.IsSet("llm.temperature") {
		cfg.Temperature = 0.3
	}
	return cfg
}

// extractionConfig builds the extraction stage settings.
func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		LLMConfig:      llmConfig(),
		MaxPromptChars: viper.GetInt("extraction.max_prompt_chars"),
	}
}

// generationConfig builds the generation stage settings.
func generationConfig() types.GenerationConfig {
	dir := viper.GetString("generation.output_dir")
	if dir == "" {
		dir = generatedDir
	}
	return types.GenerationConfig{
		LLMConfig:         llmConfig(),
		OutputDir:         dir,
		MaxRefineAttempts: viper.GetInt("generation.max_refine_attempts"),
	}
}

// usageConfig builds the usage-ledger settings.
func usageConfig() types.UsageConfig {
	return types.UsageConfig{Path: viper.GetString("usage.path")}
}

// pipelineConfig groups the effective per-stage settings.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search:     searchConfig(),
		Download:   downloadConfig(),
		Extraction: extractionConfig(),
		Generation: generationConfig(),
		Usage:      usageConfig(),
	}
}

// openLedger opens the usage ledger, returning it as an llm.Recorder.
// Errors are non-fatal: a broken ledger must not block the pipeline,
// so the caller receives a nil recorder and a close func.
func openLedger() (llm.Recorder, func()) {
	ledger, err := usage.Open(usageConfig())
	if err != nil {
		log.Warn().Err(err).Msg("usage ledger unavailable, this run's token usage will not be recorded")
		return nil, func() {}
	}
	return ledger, func() { ledger.Close() }
}
