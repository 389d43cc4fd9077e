// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one advisory lint finding. Issues never block the pipeline;
// they ride along with the generated artifact as warnings.
type Issue struct {
	Severity Severity
	Line     int
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s (line %d): %s", strings.ToUpper(string(i.Severity)), i.Line, i.Message)
}

var (
	indicatorValuePattern = regexp.MustCompile(`(\w+)\.Current\.Value`)
	divisionPattern       = regexp.MustCompile(`/\s*(\w+)`)
	comparisonPattern     = regexp.MustCompile(`(>=|<=|==|!=|>|<)`)
)

// Lint scans QuantConnect algorithm code for runtime hazards that a
// syntax check cannot see: indicator reads before IsReady, unguarded
// division, and comparisons against values that are None before warmup.
func Lint(code string) []Issue {
	lines := strings.Split(code, "\n")
	var issues []Issue
	issues = append(issues, checkIndicatorReadiness(lines)...)
	issues = append(issues, checkDivision(lines)...)
	issues = append(issues, checkNoneComparisons(lines)...)
	return issues
}

// checkIndicatorReadiness flags indicator value reads with no IsReady
// guard in the preceding lines.
func checkIndicatorReadiness(lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		if isComment(line) {
			continue
		}
		m := indicatorValuePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if !guardWithin(lines, i, 10, name+".IsReady") {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Line:     i + 1,
				Message:  fmt.Sprintf("indicator %s value used without IsReady check", name),
			})
		}
	}
	return issues
}

// checkDivision flags division by a variable with no zero guard nearby.
func checkDivision(lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		if isComment(line) || !strings.Contains(line, "/") || strings.Contains(line, "//") {
			continue
		}
		m := divisionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		divisor := m[1]
		// Numeric literals cannot be zero-guarded away misleadingly.
		if divisor == "" || (divisor[0] >= '0' && divisor[0] <= '9') {
			continue
		}
		if !guardWithin(lines, i, 5, "> 0") && !guardWithin(lines, i, 5, "!= 0") {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Line:     i + 1,
				Message:  fmt.Sprintf("division by %q without zero check", divisor),
			})
		}
	}
	return issues
}

// checkNoneComparisons flags comparisons on self attributes with no
// None guard in the preceding lines. Indicator and history fields are
// None until data arrives.
func checkNoneComparisons(lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		if isComment(line) || !comparisonPattern.MatchString(line) {
			continue
		}
		if !strings.Contains(line, "self.") || strings.Contains(line, "is None") || strings.Contains(line, "is not None") {
			continue
		}
		// Only flag dictionary-style indicator access, the pattern that
		// actually crashes before warmup.
		if !strings.Contains(line, "indicators[") {
			continue
		}
		if !guardWithin(lines, i, 5, "is not None") && !guardWithin(lines, i, 5, "is None") {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Line:     i + 1,
				Message:  "comparison with potentially None indicator value",
			})
		}
	}
	return issues
}

// guardWithin reports whether any of the window lines above index i
// contains the guard substring.
func guardWithin(lines []string, i, window int, guard string) bool {
	start := i - window
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if strings.Contains(lines[j], guard) {
			return true
		}
	}
	return false
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
