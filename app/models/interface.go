package models

import "context"

type Interface interface {
	Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
