package llm

import "context"

type Provider interface {
	// Generate returns the full model reply for a text-only prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateWithFile attaches raw file bytes (resume upload) to the prompt.
	GenerateWithFile(ctx context.Context, prompt string, mimeType string, data []byte) (string, error)
	Close() error
}
