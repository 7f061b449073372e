package rag

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"AskDocsAI/app/models"
)

const stubDim = 32

// stubModel is a deterministic in-process stand-in for the LLM backend:
// embeddings are a bag-of-words hash, so texts sharing vocabulary score
// higher under cosine similarity.
type stubModel struct {
	chatText string
	chatErr  error
	embedErr error

	mu           sync.Mutex
	chatCalls    int
	lastMessages []models.Message
}

var _ models.Interface = &stubModel{}

func (m *stubModel) Chat(_ context.Context, messages []models.Message, _ float64, _ int) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	m.lastMessages = messages
	m.mu.Unlock()
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if m.chatText != "" {
		return m.chatText, nil
	}
	return "stub answer", nil
}

func (m *stubModel) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return embedWords(text), nil
}

func (m *stubModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = embedWords(t)
	}
	return out, nil
}

func embedWords(text string) []float32 {
	vec := make([]float32, stubDim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:?!\"'")
		if w == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%stubDim]++
	}
	return vec
}

// countChunks reports how many chunks an area holds for a document.
func countChunks(t interface{ Fatalf(string, ...any) }, s vectorStore, area, docID string) int {
	results, err := s.Search(context.Background(), area, make([]float32, stubDim), 1000)
	if err != nil {
		t.Fatalf("count search: %v", err)
	}
	n := 0
	for _, r := range results {
		if r.Chunk.DocumentID == docID {
			n++
		}
	}
	return n
}
