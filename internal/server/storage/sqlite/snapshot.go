package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/inkboard/internal/crypto"
	"github.com/iudanet/inkboard/internal/server/storage"
)

var _ storage.SnapshotStorage = (*Storage)(nil)

// SaveSnapshot stores a snapshot after checksum verification
func (s *Storage) SaveSnapshot(ctx context.Context, documentID string, snapshot *storage.Snapshot) (err error) {
	if verr := crypto.VerifyChecksum(snapshot.Elements, snapshot.Checksum); verr != nil {
		return fmt.Errorf("%w: %v", storage.ErrChecksumMismatch, verr)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = documentExists(ctx, tx, documentID); err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (document_id, last_event_order, background_color, elements, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		documentID,
		snapshot.LastEventOrder,
		snapshot.BackgroundColor,
		snapshot.Elements,
		snapshot.Checksum,
		snapshot.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot with a valid checksum
func (s *Storage) LatestSnapshot(ctx context.Context, documentID string) (snap *storage.Snapshot, err error) {
	query := `
		SELECT last_event_order, background_color, elements, checksum, created_at
		FROM snapshots
		WHERE document_id = ?
		ORDER BY last_event_order DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		candidate := &storage.Snapshot{}
		var createdAt int64
		if err := rows.Scan(
			&candidate.LastEventOrder,
			&candidate.BackgroundColor,
			&candidate.Elements,
			&candidate.Checksum,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		// повреждённый снапшот пропускаем, документ восстановится из более старого и журнала
		if crypto.VerifyChecksum(candidate.Elements, candidate.Checksum) != nil {
			continue
		}

		candidate.CreatedAt = unixToTime(createdAt)
		return candidate, nil
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return nil, storage.ErrSnapshotNotFound
}
