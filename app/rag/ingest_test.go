package rag

import (
	"context"
	"strings"
	"testing"

	"AskDocsAI/app/configs"
)

func testChunking() configs.Chunking {
	return configs.Chunking{Size: 200, Overlap: 40}
}

func TestIngestIdempotent(t *testing.T) {
	store := NewMemoryStore()
	p := NewPipeline(&stubModel{}, store, nil, testChunking())
	doc := Document{ID: "d1", Text: strings.Repeat("The vacation policy allows 15 days per year.\n", 20)}

	report, err := p.Ingest(context.Background(), "hr", []Document{doc})
	if err != nil || report.Ingested != 1 {
		t.Fatalf("first ingest: %+v, %v", report, err)
	}
	first := countChunks(t, store, "hr", "d1")
	if first == 0 {
		t.Fatalf("nothing indexed")
	}

	if _, err = p.Ingest(context.Background(), "hr", []Document{doc}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if again := countChunks(t, store, "hr", "d1"); again != first {
		t.Fatalf("re-ingest changed chunk count: %d -> %d", first, again)
	}
}

func TestIngestPartialFailure(t *testing.T) {
	store := NewMemoryStore()
	p := NewPipeline(&stubModel{}, store, nil, testChunking())

	report, err := p.Ingest(context.Background(), "hr", []Document{
		{ID: "empty", Text: "   "},
		{ID: "", Text: "no id"},
		{ID: "good", Text: "A perfectly fine document."},
	})
	if err != nil {
		t.Fatalf("batch must survive bad documents: %v", err)
	}
	if report.Ingested != 1 || len(report.Failed) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if countChunks(t, store, "hr", "good") == 0 {
		t.Fatalf("good document not indexed")
	}
	if countChunks(t, store, "hr", "empty") != 0 {
		t.Fatalf("empty document was indexed")
	}
}

func TestIngestEmbeddingFailureSkipsBatchEntries(t *testing.T) {
	store := NewMemoryStore()
	model := &stubModel{embedErr: context.DeadlineExceeded}
	p := NewPipeline(model, store, nil, testChunking())

	report, err := p.Ingest(context.Background(), "hr", []Document{{ID: "d1", Text: "some text"}})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if report.Ingested != 0 || len(report.Failed) != 1 || report.Failed[0].ID != "d1" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestReingestSupersedes(t *testing.T) {
	store := NewMemoryStore()
	model := &stubModel{}
	p := NewPipeline(model, store, nil, testChunking())
	r := NewRetriever(model, store, configs.Retrieval{TopK: 3})
	ctx := context.Background()

	v1 := Document{ID: "D1", Text: "The vacation policy allows 15 days per year."}
	if _, err := p.Ingest(ctx, "hr", []Document{v1}); err != nil {
		t.Fatalf("ingest v1: %v", err)
	}

	v2 := Document{ID: "D1", Text: "The vacation policy allows 20 days per year."}
	if _, err := p.Ingest(ctx, "hr", []Document{v2}); err != nil {
		t.Fatalf("ingest v2: %v", err)
	}

	results, err := r.Retrieve(ctx, "How many vacation days are allowed?", "hr", 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("no results after re-ingest")
	}
	for _, res := range results {
		if strings.Contains(res.Chunk.Text, "15 days") {
			t.Fatalf("superseded chunk still retrievable: %q", res.Chunk.Text)
		}
	}
	if !strings.Contains(results[0].Chunk.Text, "20 days") {
		t.Fatalf("replacement chunk not retrieved: %q", results[0].Chunk.Text)
	}
}
