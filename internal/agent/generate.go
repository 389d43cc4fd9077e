// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// generationPromptTmpl asks the model for a complete QuantConnect
// algorithm implementing the extracted strategy.
var generationPromptTmpl = template.Must(template.New("generation").Parse(`You are an expert QuantConnect algorithm developer. Write a complete, runnable Python algorithm for the QuantConnect platform implementing the following strategy.

Trading signals:
{{range .Signals}}- {{.}}
{{end}}
Risk-management rules:
{{range .RiskRules}}- {{.}}
{{end}}
Requirements:
- Define one class inheriting from QCAlgorithm with Initialize and OnData methods.
- Set a start date, end date, and starting cash in Initialize.
- Guard every indicator read with an IsReady check.
- Implement the risk rules explicitly; if none were stated, liquidate on a 10% drawdown.
- Respond with Python code only, no explanation.
`))

// refinementPromptTmpl re-prompts with the prior code and its syntax
// errors so the model can repair it.
var refinementPromptTmpl = template.Must(template.New("refinement").Parse(`The following QuantConnect Python algorithm fails to parse.

Code:
{{.Code}}

Syntax errors:
{{range .Errors}}- {{.}}
{{end}}
Fix the syntax errors and return the corrected, complete algorithm. Respond with Python code only, no explanation.
`))

// CodeGenerator produces algorithm code from a strategy summary and
// repairs it when validation reports syntax errors. The refiner depends
// only on this interface.
type CodeGenerator interface {
	Generate(ctx context.Context, summary types.StrategySummary) (string, error)
	Refine(ctx context.Context, summary types.StrategySummary, previous string, syntaxErrors []string) (string, error)
}

// Generator is the LLM-backed CodeGenerator.
type Generator struct {
	Provider llm.Provider
	Recorder llm.Recorder
	Config   types.GenerationConfig
}

// Generate renders the generation prompt and returns the model's code
// with Markdown fences stripped.
func (g *Generator) Generate(ctx context.Context, summary types.StrategySummary) (string, error) {
	var buf bytes.Buffer
	if err := generationPromptTmpl.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("rendering generation prompt: %w", err)
	}
	return g.complete(ctx, buf.String())
}

// Refine re-prompts with the failing code and its error list.
func (g *Generator) Refine(ctx context.Context, _ types.StrategySummary, previous string, syntaxErrors []string) (string, error) {
	var buf bytes.Buffer
	err := refinementPromptTmpl.Execute(&buf, struct {
		Code   string
		Errors []string
	}{Code: previous, Errors: syntaxErrors})
	if err != nil {
		return "", fmt.Errorf("rendering refinement prompt: %w", err)
	}
	return g.complete(ctx, buf.String())
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	opts := llm.Options{
		Model:       g.Config.Model,
		MaxTokens:   g.Config.MaxTokens,
		Temperature: g.Config.Temperature,
	}
	resp, err := llm.CompleteWithRetry(ctx, g.Provider, prompt, opts, g.Config.MaxRetries)
	if err != nil {
		return "", err
	}
	if g.Recorder != nil {
		if rerr := g.Recorder.Record("generate", g.Provider.Name(), resp); rerr != nil {
			log.Warn().Err(rerr).Msg("recording generation usage")
		}
	}

	code := StripCodeFences(resp.Text)
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("model returned no code")
	}
	return code, nil
}

// StripCodeFences removes a wrapping Markdown code fence, with or
// without a language tag. Text without fences passes through unchanged.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	// Drop the opening fence line (``` or ```python).
	lines = lines[1:]
	// Drop the closing fence if present.
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
