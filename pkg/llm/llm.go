// Package llm provides a chat-completion client abstraction over the
// OpenAI API for prompt and question synthesis.
package llm

import (
	"context"
	"errors"
)

// Client is the contract for chat completion requests.
type Client interface {
	// Complete sends a completion request and returns the generated text.
	// An empty completion is an error, never an empty-string success.
	Complete(ctx context.Context, req Request) (string, error)

	// Configured reports whether a credential is available.
	Configured() bool
}

// Request describes a single chat completion call.
type Request struct {
	// System is the system persona message. Optional.
	System string

	// Prompt is the user message. Required.
	Prompt string

	// Temperature overrides the configured sampling temperature when > 0.
	Temperature float64

	// MaxTokens caps the completion length when > 0.
	MaxTokens int64

	// JSONResponse requests a JSON-constrained completion.
	JSONResponse bool
}

// Errors returned by completion calls.
var (
	ErrNotConfigured   = errors.New("llm credential not configured")
	ErrEmptyCompletion = errors.New("llm returned an empty completion")
)
