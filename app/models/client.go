package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"AskDocsAI/app/configs"
	"AskDocsAI/app/utils/restclient"
)

const (
	chatEndpoint      = "/v1/chat/completions"
	embeddingEndpoint = "/v1/embeddings"
)

var _ Interface = &LLMClient{}

// LLMClient talks to an OpenAI-compatible server for both chat
// completions and embeddings. All calls carry a per-attempt timeout and
// a bounded retry budget; nothing retries indefinitely.
type LLMClient struct {
	restClient *restclient.RestClient
	cfg        configs.LLM
	vectorSize int
}

func NewLLMClient(cfg configs.LLM, vectorSize int) *LLMClient {
	var headers map[string]string
	if cfg.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	}
	return &LLMClient{
		restClient: restclient.NewRestClient(cfg.BaseURL, headers),
		cfg:        cfg,
		vectorSize: vectorSize,
	}
}

// Healthy reports whether the backend answers at all. Advisory only.
func (mc *LLMClient) Healthy(ctx context.Context) bool {
	_, status, err := mc.restClient.Get(ctx, "/v1/models", nil)
	return err == nil && status < http.StatusInternalServerError
}

func (mc *LLMClient) Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	payload := requestPayload{
		Model:       mc.cfg.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < mc.cfg.MaxAttempts; attempt++ {
		if err := mc.waitBackoff(ctx, attempt); err != nil {
			return "", err
		}

		body, status, err := mc.post(ctx, chatEndpoint, payload)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		switch {
		case err != nil:
			lastErr = err
			log.Printf("⚠️ chat attempt %d failed: %v", attempt+1, err)
			continue
		case status >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("http %d: %s", status, body)
			log.Printf("⚠️ chat attempt %d failed: %v", attempt+1, lastErr)
			continue
		case status >= http.StatusBadRequest:
			return "", fmt.Errorf("%w: http %d: %s", ErrGenerationRejected, status, body)
		}

		var resp ResponseLLM
		if err = json.Unmarshal(body, &resp); err != nil {
			lastErr = fmt.Errorf("parse chat json: %w", err)
			log.Printf("⚠️ %v", lastErr)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = errors.New("empty choices in chat response")
			log.Printf("⚠️ %v", lastErr)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("%w: after %d attempts: %v", ErrGenerationUnavailable, mc.cfg.MaxAttempts, lastErr)
}

// post runs one attempt under the configured per-call timeout.
func (mc *LLMClient) post(ctx context.Context, endpoint string, payload any) ([]byte, int, error) {
	callCtx, cancel := context.WithTimeout(ctx, mc.cfg.Timeout())
	defer cancel()
	return mc.restClient.Post(callCtx, endpoint, payload, nil)
}

// waitBackoff sleeps before retry attempts, exponentially with jitter,
// and aborts as soon as the owning context is done.
func (mc *LLMClient) waitBackoff(ctx context.Context, attempt int) error {
	if attempt == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	sleep := time.Duration(100*(1<<uint(attempt))) * time.Millisecond
	sleep += time.Duration(time.Now().UnixNano() % int64(100*time.Millisecond))

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
