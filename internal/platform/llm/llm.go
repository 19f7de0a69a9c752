// Package llm talks to an OpenAI-compatible chat completions endpoint.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answered with no text.
var ErrEmptyCompletion = errors.New("text generator returned an empty completion")

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call. Zero MaxTokens and Temperature fall
// back to the client defaults.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature *float64
}

// TextGenerator produces text for a prompt. Implementations do not retry.
type TextGenerator interface {
	Complete(ctx context.Context, req Request) (string, error)
}
