package rag

import (
	"context"
	"errors"
	"fmt"

	"AskDocsAI/app/configs"
	"AskDocsAI/app/models"
	"AskDocsAI/app/storage"
)

var _ Interface = &Service{}

// Service is the RAG core's surface: Ask answers one question against
// one area, Ingest absorbs a document batch into one area. Concurrent
// Asks share nothing mutable; Ingest serializes writes per area.
type Service struct {
	model     models.Interface
	retriever *Retriever
	pipeline  *Pipeline
	cfg       *configs.Config
}

func NewService(model models.Interface, vectors vectorStore, journal storage.Interface, cfg *configs.Config) *Service {
	return &Service{
		model:     model,
		retriever: NewRetriever(model, vectors, cfg.Retrieval),
		pipeline:  NewPipeline(model, vectors, journal, cfg.Chunking),
		cfg:       cfg,
	}
}

func (s *Service) Ask(ctx context.Context, q Query) (Answer, error) {
	if q.Text == "" {
		return Answer{}, errors.New("empty question")
	}
	if q.Area == "" {
		q.Area = s.cfg.Ingest.DefaultArea
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout())
	defer cancel()

	// A broken index surfaces as a retrieval error; no answer is ever
	// generated over a context we could not actually fetch.
	results, err := s.retriever.Retrieve(ctx, q.Text, q.Area, q.TopK)
	if err != nil {
		return Answer{}, fmt.Errorf("ask %q in area %s: %w", q.Text, q.Area, err)
	}

	prompt := BuildPrompt(q.Text, results, s.cfg.Prompt.MaxContextChars)

	text, err := s.model.Chat(ctx, prompt.Messages, s.cfg.LLM.Temperature, s.cfg.LLM.MaxTokens)
	if err != nil {
		return Answer{}, fmt.Errorf("ask %q in area %s: %w", q.Text, q.Area, err)
	}

	return AssembleAnswer(text, prompt.Included, q), nil
}

func (s *Service) Ingest(ctx context.Context, area string, docs []Document) (IngestReport, error) {
	if area == "" {
		area = s.cfg.Ingest.DefaultArea
	}
	return s.pipeline.Ingest(ctx, area, docs)
}
