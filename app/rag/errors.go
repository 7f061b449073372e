package rag

import (
	"errors"
	"fmt"
)

// ErrRetrievalUnavailable means the vector index could not be reached or
// answered with garbage. An empty result set is NOT this error.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

// DocumentError records a single document that failed during ingestion.
// It never aborts the batch it belongs to.
type DocumentError struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (e DocumentError) Error() string {
	return fmt.Sprintf("ingest document %s: %s", e.ID, e.Reason)
}
