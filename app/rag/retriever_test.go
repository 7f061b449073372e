package rag

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"AskDocsAI/app/configs"
)

type failingStore struct{}

func (failingStore) EnsureArea(context.Context, string) error { return nil }
func (failingStore) Upsert(context.Context, string, []Chunk, [][]float32) error {
	return fmt.Errorf("%w: index down", ErrRetrievalUnavailable)
}
func (failingStore) Search(context.Context, string, []float32, int) ([]ScoredChunk, error) {
	return nil, fmt.Errorf("%w: index down", ErrRetrievalUnavailable)
}
func (failingStore) DeleteDocument(context.Context, string, string) error { return nil }
func (failingStore) Close() error                                         { return nil }

func seedArea(t *testing.T, store vectorStore, area string, docs ...Document) {
	t.Helper()
	p := NewPipeline(&stubModel{}, store, nil, testChunking())
	report, err := p.Ingest(context.Background(), area, docs)
	if err != nil || len(report.Failed) > 0 {
		t.Fatalf("seed %s: %+v, %v", area, report, err)
	}
}

func TestRetrieveScopedToArea(t *testing.T) {
	store := NewMemoryStore()
	seedArea(t, store, "hr", Document{ID: "D1", Text: "The vacation policy allows 15 days per year."})
	seedArea(t, store, "finance", Document{ID: "F1", Text: "Quarterly budget spreadsheets are archived."})

	r := NewRetriever(&stubModel{}, store, configs.Retrieval{TopK: 3})
	results, err := r.Retrieve(context.Background(), "How many vacation days are allowed?", "finance", 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	for _, res := range results {
		if res.Chunk.DocumentID == "D1" {
			t.Fatalf("hr content leaked into finance query: %+v", res)
		}
	}
}

func TestRetrieveEmptyIsNotAnError(t *testing.T) {
	store := NewMemoryStore()
	r := NewRetriever(&stubModel{}, store, configs.Retrieval{TopK: 3})

	results, err := r.Retrieve(context.Background(), "anything", "nowhere", 3)
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestRetrieveFallbackPolicy(t *testing.T) {
	store := NewMemoryStore()
	seedArea(t, store, "general", Document{ID: "G1", Text: "The vacation policy allows 15 days per year."})

	cases := []struct {
		name    string
		cfg     configs.Retrieval
		area    string
		wantHit bool
	}{
		{"disabled_no_fallback", configs.Retrieval{TopK: 3, FallbackArea: "general"}, "finance", false},
		{"enabled_falls_back", configs.Retrieval{TopK: 3, FallbackArea: "general", FallbackEnabled: true}, "finance", true},
		{"enabled_same_area_no_loop", configs.Retrieval{TopK: 3, FallbackArea: "finance", FallbackEnabled: true}, "finance", false},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			r := NewRetriever(&stubModel{}, store, cse.cfg)
			results, err := r.Retrieve(context.Background(), "How many vacation days are allowed?", cse.area, 3)
			if err != nil {
				t.Fatalf("retrieve: %v", err)
			}
			if cse.wantHit && len(results) == 0 {
				t.Fatalf("expected fallback hit, got none")
			}
			if !cse.wantHit && len(results) != 0 {
				t.Fatalf("expected no results, got %d", len(results))
			}
		})
	}
}

func TestRetrieveIndexDown(t *testing.T) {
	r := NewRetriever(&stubModel{}, failingStore{}, configs.Retrieval{TopK: 3})
	_, err := r.Retrieve(context.Background(), "anything", "hr", 3)
	if !errors.Is(err, ErrRetrievalUnavailable) {
		t.Fatalf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

func TestDedupe(t *testing.T) {
	in := []ScoredChunk{
		{Chunk: Chunk{DocumentID: "d1", Seq: 0}, Score: 0.9},
		{Chunk: Chunk{DocumentID: "d1", Seq: 0}, Score: 0.8},
		{Chunk: Chunk{DocumentID: "d1", Seq: 1}, Score: 0.7},
	}
	out := dedupe(in)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if out[0].Score != 0.9 {
		t.Fatalf("best-ranked duplicate not kept: %+v", out[0])
	}
}
