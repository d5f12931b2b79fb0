// Package llm is a small provider-neutral client for hosted language models.
// lexiz uses it for optional features that tolerate latency and failure,
// such as memory tips after a quiz.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single completion.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema // nil = free text
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "word-tips". Providers that
	// need a name for structured output use it as is.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the provider-neutral reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish turns raw provider output into a Response, rejecting truncated
// or schema-violating content.
func finish(req Request, content json.RawMessage, model string, usage Usage, stop StopReason) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
