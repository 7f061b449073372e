package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal at %s: %w", path, err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS ingests (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            area TEXT NOT NULL,
            document_id TEXT NOT NULL,
            filename TEXT NULL,
            chunks INTEGER NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            reason TEXT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_ingests_area ON ingests (area);
    `)
	if err != nil {
		return nil, fmt.Errorf("create ingests table: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (s *SQLiteJournal) SaveIngest(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingests (area, document_id, filename, chunks, status, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, datetime(?))`,
		rec.Area, rec.DocumentID, rec.Filename, rec.Chunks, rec.Status, rec.Reason,
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("save ingest record for %s: %w", rec.DocumentID, err)
	}
	return nil
}

func (s *SQLiteJournal) History(ctx context.Context, area string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, area, document_id, filename, chunks, status, reason, created_at
		 FROM ingests
		 WHERE area = ?
		 ORDER BY id ASC`,
		area,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err = rows.Scan(&rec.ID, &rec.Area, &rec.DocumentID, &rec.Filename,
			&rec.Chunks, &rec.Status, &rec.Reason, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		history = append(history, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}
