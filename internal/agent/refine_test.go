// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quantcoder/quantcoder/internal/validate"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// scriptedGenerator returns successive code versions per attempt.
type scriptedGenerator struct {
	versions []string
	genErr   error
	calls    int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ types.StrategySummary) (string, error) {
	if g.genErr != nil {
		return "", g.genErr
	}
	g.calls++
	return g.versions[0], nil
}

func (g *scriptedGenerator) Refine(_ context.Context, _ types.StrategySummary, _ string, _ []string) (string, error) {
	g.calls++
	if g.calls > len(g.versions) {
		return g.versions[len(g.versions)-1], nil
	}
	return g.versions[g.calls-1], nil
}

// alwaysClean reports no syntax errors.
func alwaysClean(string) ([]validate.SyntaxError, error) { return nil, nil }

// brokenUntil returns a checker that fails the first n versions.
func brokenUntil(n int) SyntaxChecker {
	checked := 0
	return func(string) ([]validate.SyntaxError, error) {
		checked++
		if checked <= n {
			return []validate.SyntaxError{{Line: 1, Message: "invalid syntax"}}, nil
		}
		return nil, nil
	}
}

var testSummary = types.StrategySummary{Signals: []string{"buy the dip"}}

func TestGenerateAndRefineCleanFirstTry(t *testing.T) {
	gen := &scriptedGenerator{versions: []string{"print('ok')"}}
	code, err := GenerateAndRefine(context.Background(), gen, testSummary, 6, alwaysClean, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("GenerateAndRefine() error = %v", err)
	}
	if !code.Valid {
		t.Error("Valid = false, want true")
	}
	if code.AttemptCount != 1 {
		t.Errorf("AttemptCount = %d, want 1", code.AttemptCount)
	}
	if len(code.SyntaxErrors) != 0 {
		t.Errorf("SyntaxErrors = %v, want none", code.SyntaxErrors)
	}
}

func TestGenerateAndRefineRecoversAfterOneRefinement(t *testing.T) {
	gen := &scriptedGenerator{versions: []string{"def broken(:", "def fixed(): pass"}}
	var progress bytes.Buffer

	code, err := GenerateAndRefine(context.Background(), gen, testSummary, 6, brokenUntil(1), &progress)
	if err != nil {
		t.Fatalf("GenerateAndRefine() error = %v", err)
	}
	if !code.Valid {
		t.Error("Valid = false, want true after refinement")
	}
	if code.AttemptCount != 2 {
		t.Errorf("AttemptCount = %d, want 2", code.AttemptCount)
	}
	if code.Code != "def fixed(): pass" {
		t.Errorf("Code = %q, want the refined version", code.Code)
	}
	if !strings.Contains(progress.String(), "refining") {
		t.Errorf("progress output %q missing refinement notice", progress.String())
	}
}

func TestGenerateAndRefineCapReachedIsSoftFailure(t *testing.T) {
	gen := &scriptedGenerator{versions: []string{"def broken(:"}}
	var progress bytes.Buffer

	code, err := GenerateAndRefine(context.Background(), gen, testSummary, 3, brokenUntil(100), &progress)
	if err != nil {
		t.Fatalf("GenerateAndRefine() at cap: error = %v, want nil (soft failure)", err)
	}
	if code.Valid {
		t.Error("Valid = true, want false at refine cap")
	}
	if code.AttemptCount != 3 {
		t.Errorf("AttemptCount = %d, want the cap 3", code.AttemptCount)
	}
	if len(code.SyntaxErrors) == 0 {
		t.Error("SyntaxErrors empty, want the last errors preserved")
	}
	if !strings.Contains(progress.String(), "still invalid") {
		t.Errorf("progress output %q missing cap warning", progress.String())
	}
}

func TestGenerateAndRefineGeneratorError(t *testing.T) {
	genErr := errors.New("model exploded")
	gen := &scriptedGenerator{versions: []string{""}, genErr: genErr}
	if _, err := GenerateAndRefine(context.Background(), gen, testSummary, 6, alwaysClean, &bytes.Buffer{}); !errors.Is(err, genErr) {
		t.Errorf("GenerateAndRefine() error = %v, want the generator error", err)
	}
}

func TestGenerateAndRefineDefaultsCap(t *testing.T) {
	gen := &scriptedGenerator{versions: []string{"def broken(:"}}
	code, err := GenerateAndRefine(context.Background(), gen, testSummary, 0, brokenUntil(100), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("GenerateAndRefine() error = %v", err)
	}
	if code.AttemptCount != defaultMaxRefineAttempts {
		t.Errorf("AttemptCount = %d, want default cap %d", code.AttemptCount, defaultMaxRefineAttempts)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "print('hi')", "print('hi')"},
		{"plain fences", "```\nprint('hi')\n```", "print('hi')"},
		{"language tag", "```python\nprint('hi')\n```", "print('hi')"},
		{"missing closing fence", "```python\nprint('hi')", "print('hi')"},
		{"surrounding whitespace", "  \n```python\nprint('hi')\n```\n  ", "print('hi')"},
		{"multiline body", "```python\na = 1\nb = 2\n```", "a = 1\nb = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
