// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/quantcoder/quantcoder/internal/agent"
	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/internal/pdftext"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// extractSummary runs the text-extraction and strategy-extraction
// stages for a downloaded PDF.
func extractSummary(ctx context.Context, pdfPath string, recorder llm.Recorder) (types.StrategySummary, error) {
	extractor := &pdftext.PdftotextExtractor{}
	text, err := extractor.Extract(pdfPath)
	if err != nil {
		return types.StrategySummary{}, err
	}

	cfg := extractionConfig()
	provider, err := llm.NewProvider(cfg.LLMConfig)
	if err != nil {
		return types.StrategySummary{}, err
	}

	a := &agent.Extractor{Provider: provider, Recorder: recorder, Config: cfg}
	return a.ExtractStrategy(ctx, text)
}

// generateFromSummary runs the generation agent and the bounded
// validate-and-refine loop, then writes the artifact to outPath. A
// soft-invalid result (refine cap reached) is still written, with a
// warning; it is not an error.
func generateFromSummary(ctx context.Context, summary types.StrategySummary, outPath string, recorder llm.Recorder) error {
	cfg := generationConfig()
	provider, err := llm.NewProvider(cfg.LLMConfig)
	if err != nil {
		return err
	}

	gen := &agent.Generator{Provider: provider, Recorder: recorder, Config: cfg}
	code, err := agent.GenerateAndRefine(ctx, gen, summary, cfg.MaxRefineAttempts, nil, os.Stdout)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(code.Code), 0o644); err != nil {
		return fmt.Errorf("writing generated code: %w", err)
	}

	if code.Valid {
		fmt.Printf("Code generated at %s (%d attempt(s))\n", outPath, code.AttemptCount)
	} else {
		fmt.Printf("warning: generated code at %s is syntactically invalid after %d attempt(s):\n", outPath, code.AttemptCount)
		for _, e := range code.SyntaxErrors {
			fmt.Printf("  %s\n", e)
		}
	}
	for _, w := range code.Warnings {
		fmt.Printf("  lint: %s\n", w)
	}
	return nil
}

// writeSummary saves the strategy summary as plain text plus a YAML
// sidecar next to it.
func writeSummary(summary types.StrategySummary, txtPath string) error {
	if err := os.MkdirAll(filepath.Dir(txtPath), 0o755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}
	if err := os.WriteFile(txtPath, []byte(summary.RawText+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	yamlPath := txtPath[:len(txtPath)-len(filepath.Ext(txtPath))] + ".yaml"
	if err := os.WriteFile(yamlPath, data, 0o644); err != nil {
		return fmt.Errorf("writing summary sidecar: %w", err)
	}
	return nil
}

// pdfPathFor returns the expected download location for an article.
func pdfPathFor(index int) string {
	return filepath.Join(downloadConfig().DownloadsDir, fmt.Sprintf("article_%d.pdf", index))
}
