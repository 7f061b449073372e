package rag

import (
	"context"
	"log"

	"AskDocsAI/app/configs"
	"AskDocsAI/app/models"
)

// Retriever embeds a question and searches exactly one area's partition.
// An empty result is a valid outcome; only an unreachable index is an
// error.
type Retriever struct {
	model   models.Interface
	vectors vectorStore
	cfg     configs.Retrieval
}

func NewRetriever(model models.Interface, vectors vectorStore, cfg configs.Retrieval) *Retriever {
	return &Retriever{model: model, vectors: vectors, cfg: cfg}
}

func (r *Retriever) Retrieve(ctx context.Context, text, area string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = r.cfg.TopK
	}

	vector, err := r.model.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	results, err := r.vectors.Search(ctx, area, vector, topK)
	if err != nil {
		return nil, err
	}

	// Cross-area fallback is a single, explicit, logged hop to the one
	// configured area. Silent escalation would be a tenant leak.
	if len(results) == 0 && r.cfg.FallbackEnabled &&
		r.cfg.FallbackArea != "" && r.cfg.FallbackArea != area {
		log.Printf("🔁 No results in area %q, falling back to area %q", area, r.cfg.FallbackArea)
		results, err = r.vectors.Search(ctx, r.cfg.FallbackArea, vector, topK)
		if err != nil {
			return nil, err
		}
	}

	return dedupe(results), nil
}

// dedupe drops repeated (document, seq) positions, keeping the best
// ranked occurrence. Overlapping chunk windows can surface the same
// position more than once.
func dedupe(results []ScoredChunk) []ScoredChunk {
	seen := make(map[SourceRef]bool, len(results))
	out := results[:0]
	for _, r := range results {
		key := SourceRef{DocumentID: r.Chunk.DocumentID, ChunkSeq: r.Chunk.Seq}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
