// Package llm provides the text generation backend for daily analysis.
package llm

import "context"

// Provider abstracts a text generation model
type Provider interface {
	// Generate sends a prompt and returns the model's text answer
	Generate(ctx context.Context, prompt string) (string, error)
}
