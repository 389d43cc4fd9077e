// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/quantcoder/quantcoder/internal/validate"
	"github.com/quantcoder/quantcoder/pkg/types"
)

// SyntaxChecker parses code and returns its syntax errors, nil when the
// code is clean. validate.Python is the production checker.
type SyntaxChecker func(code string) ([]validate.SyntaxError, error)

const defaultMaxRefineAttempts = 6

// GenerateAndRefine runs the generation agent and then the bounded
// validate-and-refine loop: parse the code; on syntax errors re-prompt
// the generator with the errors appended, up to maxAttempts total
// generation calls. When the cap is reached the last attempt is
// returned with Valid=false — a soft failure the caller reports as a
// warning alongside the artifact. AttemptCount never exceeds
// maxAttempts. Lint findings are attached as advisory warnings and
// never trigger refinement.
func GenerateAndRefine(ctx context.Context, gen CodeGenerator, summary types.StrategySummary, maxAttempts int, check SyntaxChecker, w io.Writer) (types.GeneratedCode, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxRefineAttempts
	}
	if check == nil {
		check = validate.Python
	}

	code, err := gen.Generate(ctx, summary)
	if err != nil {
		return types.GeneratedCode{}, fmt.Errorf("generating code: %w", err)
	}
	result := types.GeneratedCode{Code: code, AttemptCount: 1}

	for {
		syntaxErrs, err := check(result.Code)
		if err != nil {
			return result, fmt.Errorf("validating code: %w", err)
		}
		if len(syntaxErrs) == 0 {
			result.Valid = true
			result.SyntaxErrors = nil
			attachLint(&result)
			return result, nil
		}

		result.SyntaxErrors = formatSyntaxErrors(syntaxErrs)
		if result.AttemptCount >= maxAttempts {
			fmt.Fprintf(w, "warning: code still invalid after %d attempts\n", result.AttemptCount)
			return result, nil
		}

		fmt.Fprintf(w, "refining: attempt %d had %d syntax error(s)\n", result.AttemptCount, len(syntaxErrs))
		refined, err := gen.Refine(ctx, summary, result.Code, result.SyntaxErrors)
		if err != nil {
			return result, fmt.Errorf("refining code: %w", err)
		}
		result.Code = refined
		result.AttemptCount++
	}
}

func formatSyntaxErrors(errs []validate.SyntaxError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}

func attachLint(result *types.GeneratedCode) {
	for _, issue := range validate.Lint(result.Code) {
		result.Warnings = append(result.Warnings, issue.String())
	}
}
