// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpenInBrowserRejectsUnsafeURL(t *testing.T) {
	called := false
	old := openCommand
	openCommand = func(url string) *exec.Cmd {
		called = true
		return exec.Command("true")
	}
	defer func() { openCommand = old }()

	for _, url := range []string{"", "javascript:alert(1)", "file:///etc/passwd"} {
		if err := OpenInBrowser(url); !errors.Is(err, ErrUnsafeURL) {
			t.Errorf("OpenInBrowser(%q) error = %v, want ErrUnsafeURL", url, err)
		}
	}
	if called {
		t.Error("openCommand invoked for an unsafe URL")
	}
}

func TestOpenInBrowserRunsCommand(t *testing.T) {
	var gotURL string
	old := openCommand
	openCommand = func(url string) *exec.Cmd {
		gotURL = url
		return exec.Command("true")
	}
	defer func() { openCommand = old }()

	if err := OpenInBrowser("https://example.org/paper"); err != nil {
		t.Fatalf("OpenInBrowser() error = %v", err)
	}
	if gotURL != "https://example.org/paper" {
		t.Errorf("opened URL = %q", gotURL)
	}
}
