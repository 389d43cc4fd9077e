// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext converts PDF files to plain text.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnreadable is returned for corrupt, encrypted, or empty PDFs.
var ErrUnreadable = errors.New("unreadable PDF")

// Extractor converts a PDF file to plain text. The extraction is a pure
// transformation with no side effects beyond reading the file.
type Extractor interface {
	Extract(pdfPath string) (string, error)
}

// PdftotextExtractor shells out to the poppler pdftotext binary, the
// same backend the conversion stage uses elsewhere in this toolchain.
type PdftotextExtractor struct {
	// Binary overrides the pdftotext executable name. Empty means
	// "pdftotext" from PATH.
	Binary string
}

// Extract runs pdftotext in stdout mode and returns the text.
func (e *PdftotextExtractor) Extract(pdfPath string) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("PDF not found: %w", err)
	}

	binary := e.Binary
	if binary == "" {
		binary = "pdftotext"
	}

	cmd := exec.Command(binary, pdfPath, "-")
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: pdftotext: %v: %s", ErrUnreadable, err, strings.TrimSpace(stderr.String()))
	}

	text := out.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no extractable text in %s", ErrUnreadable, pdfPath)
	}
	return text, nil
}
