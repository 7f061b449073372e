package models

import "errors"

var (
	// ErrEmbeddingUnavailable: the embedding endpoint could not be
	// reached or kept returning malformed output after bounded retries.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrEmbeddingDimensionMismatch: the endpoint answered, but with a
	// vector whose dimensionality differs from the configured one.
	ErrEmbeddingDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrGenerationUnavailable: transient generation failures exhausted
	// the retry budget.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrGenerationRejected: the generation endpoint refused the request
	// outright (4xx); retrying would not help.
	ErrGenerationRejected = errors.New("generation rejected")
)
