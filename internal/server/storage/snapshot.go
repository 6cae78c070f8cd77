package storage

import (
	"context"
	"time"
)

//go:generate moq -out snapshot_mock.go . SnapshotStorage

// Snapshot stored materialized document state.
// Elements is the JSON array of elements, Checksum is its BLAKE2b-256 hex digest.
type Snapshot struct {
	CreatedAt       time.Time
	BackgroundColor string
	Checksum        string
	Elements        []byte
	LastEventOrder  int64
}

// SnapshotStorage defines interface for document snapshots persistence
type SnapshotStorage interface {
	// SaveSnapshot stores a snapshot after checksum verification
	// Returns ErrChecksumMismatch if content is corrupted, ErrDocumentNotFound if document doesn't exist
	SaveSnapshot(ctx context.Context, documentID string, snapshot *Snapshot) error

	// LatestSnapshot returns the snapshot with the highest LastEventOrder whose checksum is valid.
	// Corrupted rows are skipped.
	// Returns ErrSnapshotNotFound if there is no valid snapshot
	LatestSnapshot(ctx context.Context, documentID string) (*Snapshot, error)
}
