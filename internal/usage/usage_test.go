// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantcoder/quantcoder/internal/llm"
	"github.com/quantcoder/quantcoder/pkg/types"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(types.UsageConfig{Path: filepath.Join(t.TempDir(), "usage.db")})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndReport(t *testing.T) {
	l := openTestLedger(t)

	require.NoError(t, l.Record("extract", "openai", llm.Response{
		Model: "gpt-4o-2024-11-20", PromptTokens: 1000, CompletionTokens: 500, TotalTokens: 1500,
	}))
	require.NoError(t, l.Record("generate", "openai", llm.Response{
		Model: "gpt-4o-2024-11-20", PromptTokens: 2000, CompletionTokens: 1000, TotalTokens: 3000,
	}))
	require.NoError(t, l.Record("generate", "anthropic", llm.Response{
		Model: "claude-sonnet-4-5-20250929", PromptTokens: 500, CompletionTokens: 250, TotalTokens: 750,
	}))

	var buf bytes.Buffer
	require.NoError(t, l.Report(&buf))
	out := buf.String()

	assert.Contains(t, out, "By model:")
	assert.Contains(t, out, "By stage:")
	assert.Contains(t, out, "gpt-4o-2024-11-20")
	assert.Contains(t, out, "claude-sonnet-4-5-20250929")
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "generate")
}

func TestReportEmptyLedger(t *testing.T) {
	l := openTestLedger(t)

	var buf bytes.Buffer
	require.NoError(t, l.Report(&buf))
	assert.Contains(t, buf.String(), "No LLM calls recorded.")
}

func TestPricingCost(t *testing.T) {
	p := Pricing{InputPerM: 2.50, OutputPerM: 10.00}
	// 1M prompt tokens at $2.50 plus 100k completion tokens at $10.00.
	assert.InDelta(t, 3.50, p.Cost(1_000_000, 100_000), 1e-9)
}

func TestResolvePricingUnknownModel(t *testing.T) {
	p := ResolvePricing("some-future-model")
	assert.Zero(t, p.InputPerM)
	assert.Zero(t, p.OutputPerM)
	assert.Zero(t, p.Cost(1_000_000, 1_000_000))
}
