// Package service holds the hosted language-model clients.
package service

import "context"

// LLMClient turns a prompt into model text.
type LLMClient interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Embedder produces dense vectors for semantic search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

var (
	_ LLMClient = (*GeminiService)(nil)
	_ Embedder  = (*GeminiService)(nil)
	_ LLMClient = (*OpenRouterService)(nil)
)
