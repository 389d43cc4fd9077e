// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StrategySummary is the extraction agent's structured reading of a
// paper: the trading signals it proposes and the risk-management rules
// that accompany them. RawText preserves the model's full answer so the
// generation prompt loses nothing to parsing.
type StrategySummary struct {
	// Signals lists the entry/exit signals, one per line item.
	Signals []string `json:"signals" yaml:"signals"`

	// RiskRules lists position-sizing and risk-management rules.
	RiskRules []string `json:"risk_rules" yaml:"risk_rules"`

	// RawText is the unparsed model response.
	RawText string `json:"raw_text" yaml:"raw_text"`
}

// GeneratedCode is the generation agent's output, refined in place
// until it parses or the attempt cap is reached.
type GeneratedCode struct {
	// Code is the algorithm source (Python, QCAlgorithm subclass).
	Code string `json:"code" yaml:"-"`

	// AttemptCount is the number of generation calls made so far,
	// starting at 1 for the initial generation.
	AttemptCount int `json:"attempt_count" yaml:"attempt_count"`

	// Valid reports whether Code parsed without syntax errors.
	Valid bool `json:"valid" yaml:"valid"`

	// SyntaxErrors holds the parse errors from the last validation,
	// empty when Valid.
	SyntaxErrors []string `json:"syntax_errors,omitempty" yaml:"syntax_errors,omitempty"`

	// Warnings holds advisory lint findings. They never block.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
