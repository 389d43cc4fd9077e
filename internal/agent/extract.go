// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent holds the LLM-driven pipeline stages: strategy
// extraction from paper text, algorithm code generation, and the
// bounded validate-and-refine loop.
package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// ErrExtractionFailed is returned when the model call fails or its
// answer carries no recognizable strategy structure.
var ErrExtractionFailed = errors.New("strategy extraction failed")

const defaultMaxPromptChars = 48000

// extractionPromptTmpl asks the model to read a trading-research paper
// and answer in a fixed two-section bullet format the parser below
// understands.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`You are a quantitative trading analyst. Read the following academic paper text and identify the trading strategy it describes.

Respond in exactly this format:

SIGNALS:
- one entry or exit signal per line, concrete enough to implement
RISK RULES:
- one risk-management or position-sizing rule per line

List only rules the paper actually states or directly implies. If the paper defines no explicit risk management, write "- none stated" under RISK RULES. Do not add any text outside the two sections.

Paper text:
{{.Text}}
`))

// Extractor is the extraction agent. It owns the prompt template and
// the truncation policy; the provider does the talking.
type Extractor struct {
	Provider llm.Provider
	Recorder llm.Recorder
	Config   types.ExtractionConfig
}

// ExtractStrategy prompts the model with the paper text (truncated to
// the configured budget, head kept) and parses the answer into a
// StrategySummary.
func (e *Extractor) ExtractStrategy(ctx context.Context, text string) (types.StrategySummary, error) {
	if strings.TrimSpace(text) == "" {
		return types.StrategySummary{}, fmt.Errorf("%w: empty paper text", ErrExtractionFailed)
	}

	maxChars := e.Config.MaxPromptChars
	if maxChars <= 0 {
		maxChars = defaultMaxPromptChars
	}
	if len(text) > maxChars {
		log.Debug().Int("original", len(text)).Int("kept", maxChars).Msg("truncating paper text for prompt")
		text = text[:maxChars]
	}

	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return types.StrategySummary{}, fmt.Errorf("rendering extraction prompt: %w", err)
	}

	resp, err := llm.CompleteWithRetry(ctx, e.Provider, buf.String(), e.options(), e.Config.MaxRetries)
	if err != nil {
		return types.StrategySummary{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	e.record(resp)

	summary, err := parseSummary(resp.Text)
	if err != nil {
		return types.StrategySummary{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return summary, nil
}

func (e *Extractor) options() llm.Options {
	return llm.Options{
		Model:       e.Config.Model,
		MaxTokens:   e.Config.MaxTokens,
		Temperature: e.Config.Temperature,
	}
}

func (e *Extractor) record(resp llm.Response) {
	if e.Recorder == nil {
		return
	}
	if err := e.Recorder.Record("extract", e.Provider.Name(), resp); err != nil {
		log.Warn().Err(err).Msg("recording extraction usage")
	}
}

// parseSummary reads the SIGNALS / RISK RULES sections out of the model
// answer. The raw text is always preserved; a response with no parsed
// signals is an error.
func parseSummary(raw string) (types.StrategySummary, error) {
	summary := types.StrategySummary{RawText: raw}

	section := ""
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		switch {
		case strings.HasPrefix(upper, "SIGNALS"):
			section = "signals"
			continue
		case strings.HasPrefix(upper, "RISK RULES"):
			section = "risk"
			continue
		}
		item, ok := bulletItem(trimmed)
		if !ok {
			continue
		}
		switch section {
		case "signals":
			summary.Signals = append(summary.Signals, item)
		case "risk":
			summary.RiskRules = append(summary.RiskRules, item)
		}
	}

	if len(summary.Signals) == 0 {
		return types.StrategySummary{}, fmt.Errorf("no signals found in model response")
	}
	return summary, nil
}

// bulletItem strips a leading list marker and returns the item text.
func bulletItem(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			item := strings.TrimSpace(strings.TrimPrefix(line, marker))
			return item, item != ""
		}
	}
	return "", false
}
