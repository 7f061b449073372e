package models

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
)

func (mc *LLMClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := mc.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts in one request to amortize the remote
// call. Every returned vector is checked against the configured
// dimensionality before anything downstream may index it.
func (mc *LLMClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if mc.cfg.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: no embedding model configured", ErrEmbeddingUnavailable)
	}

	payload := embeddingRequestPayload{
		Model: mc.cfg.EmbeddingModel,
		Input: texts,
	}

	var lastErr error
	for attempt := 0; attempt < mc.cfg.MaxAttempts; attempt++ {
		if err := mc.waitBackoff(ctx, attempt); err != nil {
			return nil, err
		}

		body, status, err := mc.post(ctx, embeddingEndpoint, payload)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil || status >= http.StatusBadRequest {
			if err == nil {
				err = fmt.Errorf("http %d: %s", status, body)
			}
			lastErr = err
			log.Printf("⚠️ embed attempt %d failed: %v", attempt+1, err)
			continue
		}

		var resp embeddingResponse
		if err = json.Unmarshal(body, &resp); err != nil {
			lastErr = fmt.Errorf("parse embeddings json: %w", err)
			log.Printf("⚠️ %v", lastErr)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
			log.Printf("⚠️ %v", lastErr)
			continue
		}

		return mc.collectVectors(resp)
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrEmbeddingUnavailable, mc.cfg.MaxAttempts, lastErr)
}

func (mc *LLMClient) collectVectors(resp embeddingResponse) ([][]float32, error) {
	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })

	out := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		if mc.vectorSize > 0 && len(item.Embedding) != mc.vectorSize {
			return nil, fmt.Errorf("%w: model %s returned %d dimensions, collection expects %d",
				ErrEmbeddingDimensionMismatch, mc.cfg.EmbeddingModel, len(item.Embedding), mc.vectorSize)
		}
		out[i] = item.Embedding
	}
	return out, nil
}
