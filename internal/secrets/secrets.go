// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key files the pipeline knows about.
const (
	keyOpenAI    = "openai-api-key"
	keyAnthropic = "anthropic-api-key"
	keyUnpaywall = "unpaywall-email"
)

// Secrets maps key names to their values. The zero value is usable:
// accessors on a nil Secrets return "".
type Secrets map[string]string

// OpenAIAPIKey returns the OpenAI key, "" when absent.
func (s Secrets) OpenAIAPIKey() string { return s[keyOpenAI] }

// AnthropicAPIKey returns the Anthropic key, "" when absent.
func (s Secrets) AnthropicAPIKey() string { return s[keyAnthropic] }

// UnpaywallEmail returns the Unpaywall contact address, "" when absent.
func (s Secrets) UnpaywallEmail() string { return s[keyUnpaywall] }

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
