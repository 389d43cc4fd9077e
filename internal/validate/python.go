// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks generated algorithm code: a real Python
// grammar for syntax, plus advisory lints for runtime hazards common in
// generated QuantConnect algorithms. Syntactic validity does not imply
// the code runs correctly on the target platform.
package validate

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError is one parse failure with its 1-based source line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Python parses code with the tree-sitter Python grammar and returns
// the syntax errors found, nil when the code parses cleanly.
func Python(code string) ([]SyntaxError, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("parsing Python: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var errs []SyntaxError
	collectErrors(root, []byte(code), &errs)
	if len(errs) == 0 {
		// HasError was set but no ERROR node surfaced; report the root.
		errs = append(errs, SyntaxError{Line: 1, Message: "syntax error"})
	}
	return errs, nil
}

// collectErrors walks the tree and records ERROR and missing nodes.
func collectErrors(node *sitter.Node, src []byte, errs *[]SyntaxError) {
	if node.Type() == "ERROR" {
		text := node.Content(src)
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		*errs = append(*errs, SyntaxError{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("invalid syntax near %q", text),
		})
		// An ERROR subtree is already reported; its children restate it.
		return
	}
	if node.IsMissing() {
		*errs = append(*errs, SyntaxError{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("missing %s", node.Type()),
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), src, errs)
	}
}
