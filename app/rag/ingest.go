package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"AskDocsAI/app/configs"
	"AskDocsAI/app/models"
	"AskDocsAI/app/storage"
)

// Pipeline absorbs document batches into one area's partition:
// chunk, embed, delete prior chunks, upsert. One bad document is logged,
// journaled and skipped; the batch carries on.
type Pipeline struct {
	model   models.Interface
	vectors vectorStore
	journal storage.Interface
	cfg     configs.Chunking

	locks sync.Map // area -> *sync.Mutex
}

func NewPipeline(model models.Interface, vectors vectorStore, journal storage.Interface, cfg configs.Chunking) *Pipeline {
	if journal == nil {
		journal = storage.Noop{}
	}
	return &Pipeline{
		model:   model,
		vectors: vectors,
		journal: journal,
		cfg:     cfg,
	}
}

func (p *Pipeline) Ingest(ctx context.Context, area string, docs []Document) (IngestReport, error) {
	var report IngestReport

	// Writes to one area are serialized so the delete-then-upsert of a
	// re-ingestion stays atomic relative to other writers. Different
	// areas ingest concurrently.
	mu := p.areaLock(area)
	mu.Lock()
	defer mu.Unlock()

	if err := p.vectors.EnsureArea(ctx, area); err != nil {
		return report, fmt.Errorf("ingest into area %s: %w", area, err)
	}

	for _, doc := range docs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		chunks, err := p.ingestOne(ctx, area, doc)
		if err != nil {
			docErr := DocumentError{ID: doc.ID, Reason: err.Error()}
			log.Printf("⚠️ %v", docErr)
			report.Failed = append(report.Failed, docErr)
			p.saveRecord(ctx, area, doc, 0, storage.StatusFailed, err.Error())
			continue
		}

		report.Ingested++
		p.saveRecord(ctx, area, doc, chunks, storage.StatusOK, "")
		log.Printf("✅ Ingested %s into %s (%d chunks)", doc.ID, area, chunks)
	}

	return report, nil
}

func (p *Pipeline) ingestOne(ctx context.Context, area string, doc Document) (int, error) {
	if doc.ID == "" {
		return 0, errors.New("document has no id")
	}

	chunks := ChunkDocument(doc, area, p.cfg.Size, p.cfg.Overlap)
	if len(chunks) == 0 {
		return 0, errors.New("document is empty, nothing to index")
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := p.model.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}

	// Superseding: wipe whatever a prior version of this document left
	// behind before the replacement chunks land.
	if err = p.vectors.DeleteDocument(ctx, area, doc.ID); err != nil {
		return 0, err
	}
	if err = p.vectors.Upsert(ctx, area, chunks, vectors); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func (p *Pipeline) saveRecord(ctx context.Context, area string, doc Document, chunks int, status, reason string) {
	rec := storage.Record{
		Area:       area,
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		Chunks:     chunks,
		Status:     status,
		Reason:     reason,
	}
	if err := p.journal.SaveIngest(ctx, rec); err != nil {
		log.Printf("⚠️ Error journaling ingest of %s: %v", doc.ID, err)
	}
}

func (p *Pipeline) areaLock(area string) *sync.Mutex {
	mu, _ := p.locks.LoadOrStore(area, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
