// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeBinary writes an executable shell script standing in for
// pdftotext and returns its path.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-pdftotext")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func pdfFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	e := &PdftotextExtractor{Binary: fakeBinary(t, `echo "extracted paper text"`)}
	text, err := e.Extract(pdfFixture(t))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "extracted paper text") {
		t.Errorf("Extract() = %q", text)
	}
}

func TestExtractBinaryFailure(t *testing.T) {
	e := &PdftotextExtractor{Binary: fakeBinary(t, `echo "Syntax Error: file is damaged" >&2; exit 1`)}
	_, err := e.Extract(pdfFixture(t))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Extract() error = %v, want ErrUnreadable", err)
	}
	if err != nil && !strings.Contains(err.Error(), "damaged") {
		t.Errorf("Extract() error %q does not carry the tool's stderr", err)
	}
}

func TestExtractEmptyOutput(t *testing.T) {
	e := &PdftotextExtractor{Binary: fakeBinary(t, `printf "  \n"`)}
	_, err := e.Extract(pdfFixture(t))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Extract() on empty text: error = %v, want ErrUnreadable", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := &PdftotextExtractor{Binary: fakeBinary(t, `echo text`)}
	if _, err := e.Extract(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Extract() on missing file: want error, got nil")
	}
}
