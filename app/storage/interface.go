package storage

import (
	"context"
	"time"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Record is one document's outcome in one ingestion run. The journal is
// an audit trail; the vector index alone owns the indexed content.
type Record struct {
	ID         int64     `json:"id" db:"id"`
	Area       string    `json:"area" db:"area"`
	DocumentID string    `json:"document_id" db:"document_id"`
	Filename   string    `json:"filename" db:"filename"`
	Chunks     int       `json:"chunks" db:"chunks"`
	Status     string    `json:"status" db:"status"`
	Reason     string    `json:"reason" db:"reason"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Interface interface {
	SaveIngest(ctx context.Context, rec Record) error
	History(ctx context.Context, area string) ([]Record, error)
}

// Noop discards records; used when journaling is disabled and in tests.
type Noop struct{}

func (Noop) SaveIngest(context.Context, Record) error          { return nil }
func (Noop) History(context.Context, string) ([]Record, error) { return nil, nil }
