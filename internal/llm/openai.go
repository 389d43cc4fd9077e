// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// openAIAPIURL is the OpenAI chat completions endpoint. Package-level
// var for test substitution.
var openAIAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	APIKey string
	Client *http.Client
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// openAIRequest is the request body for the chat completions API.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

// openAIMessage is a single message in the conversation.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse is the response body from the chat completions API.
type openAIResponse struct {
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete sends the prompt as a single user message and returns the
// completion with token usage.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, opts Options) (Response, error) {
	reqBody := openAIRequest{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Response{}, classify(&apiError{status: resp.StatusCode, body: strings.TrimSpace(string(body))})
	}

	var oResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return Response{}, fmt.Errorf("decoding OpenAI response: %w", err)
	}

	if len(oResp.Choices) == 0 {
		return Response{}, fmt.Errorf("OpenAI API returned no choices")
	}

	return Response{
		Text:             strings.TrimSpace(oResp.Choices[0].Message.Content),
		Model:            oResp.Model,
		PromptTokens:     oResp.Usage.PromptTokens,
		CompletionTokens: oResp.Usage.CompletionTokens,
		TotalTokens:      oResp.Usage.TotalTokens,
	}, nil
}
