package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Document is the unit of ingestion: raw text belonging to exactly one area.
type Document struct {
	ID       string
	Text     string
	Filename string
}

// Chunk is the unit of indexing and retrieval. Its identity is fully
// determined by (DocumentID, Seq), so re-ingesting a document replaces
// its chunks instead of duplicating them.
type Chunk struct {
	DocumentID string
	Seq        int
	Text       string
	Area       string
}

type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// Query is evaluated against exactly one area. TopK <= 0 means the
// configured default.
type Query struct {
	Text        string
	Area        string
	TopK        int
	WithContext bool
	WithSources bool
}

type SourceRef struct {
	DocumentID string `json:"document_id"`
	ChunkSeq   int    `json:"chunk_index"`
}

type Answer struct {
	Text    string      `json:"answer"`
	Context []string    `json:"context,omitempty"`
	Sources []SourceRef `json:"sources,omitempty"`
}

// IngestReport summarizes one ingestion batch. Failed documents do not
// abort the batch.
type IngestReport struct {
	Ingested int
	Failed   []DocumentError
}

type Interface interface {
	Ask(ctx context.Context, q Query) (Answer, error)
	Ingest(ctx context.Context, area string, docs []Document) (IngestReport, error)
}

type vectorStore interface {
	EnsureArea(ctx context.Context, area string) error
	Upsert(ctx context.Context, area string, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, area string, vector []float32, k int) ([]ScoredChunk, error)
	DeleteDocument(ctx context.Context, area, documentID string) error
	Close() error
}

var chunkPointNS = uuid.MustParse("8f4e7a2d-1c3b-4e5f-9a6d-2b8c0d1e3f4a")

// ChunkPointID derives a stable UUID for a chunk from its document ID and
// sequence index. Identical input always yields the identical ID.
func ChunkPointID(documentID string, seq int) string {
	return uuid.NewSHA1(chunkPointNS, []byte(fmt.Sprintf("%s:%d", documentID, seq))).String()
}
