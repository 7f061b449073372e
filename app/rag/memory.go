package rag

import (
	"context"
	"fmt"
	"math"
	"sync"

	"AskDocsAI/app/models"
)

// MemoryStore is a brute-force cosine store partitioned by area. It backs
// tests and small single-process deployments; QdrantStore is the durable
// backend. Both enforce the same contract.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	areas     map[string]map[string]memoryPoint
}

type memoryPoint struct {
	chunk  Chunk
	vector []float32
}

func NewMemoryStore() vectorStore {
	return &MemoryStore{areas: map[string]map[string]memoryPoint{}}
}

func (s *MemoryStore) EnsureArea(_ context.Context, area string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.areas[area] == nil {
		s.areas[area] = map[string]memoryPoint{}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Upsert(_ context.Context, area string, chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("upsert: %d chunks but %d vectors", len(chunks), len(vectors))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if s.dimension == 0 {
			s.dimension = len(v)
		}
		if len(v) != s.dimension {
			return fmt.Errorf("%w: got %d, store holds %d",
				models.ErrEmbeddingDimensionMismatch, len(v), s.dimension)
		}
	}

	if s.areas[area] == nil {
		s.areas[area] = map[string]memoryPoint{}
	}
	for i, ch := range chunks {
		ch.Area = area
		s.areas[area][ChunkPointID(ch.DocumentID, ch.Seq)] = memoryPoint{chunk: ch, vector: vectors[i]}
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, area string, vector []float32, k int) ([]ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.areas[area]
	out := make([]ScoredChunk, 0, len(points))
	for _, p := range points {
		out = append(out, ScoredChunk{Chunk: p.chunk, Score: cosine(p.vector, vector)})
	}
	sortScored(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, area, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.areas[area] {
		if p.chunk.DocumentID == documentID {
			delete(s.areas[area], id)
		}
	}
	return nil
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
