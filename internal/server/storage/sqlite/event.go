package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/storage"
)

var _ storage.EventStorage = (*Storage)(nil)

// AppendEvents stores events in one transaction, skipping already stored orders
func (s *Storage) AppendEvents(ctx context.Context, documentID string, events []models.Event) (accepted, duplicates int, err error) {
	for _, ev := range events {
		if ev.Order <= 0 {
			return 0, 0, fmt.Errorf("%w: %d", storage.ErrInvalidOrder, ev.Order)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = documentExists(ctx, tx, documentID); err != nil {
		return 0, 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (document_id, event_order, event_type, event_data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (document_id, event_order) DO NOTHING
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	now := time.Now().Unix()
	for _, ev := range events {
		var result sql.Result
		result, err = stmt.ExecContext(ctx, documentID, ev.Order, string(ev.Type), []byte(ev.Payload), now)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert event %d: %w", ev.Order, err)
		}
		var rows int64
		rows, err = result.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			duplicates++
		} else {
			accepted++
		}
	}

	if accepted > 0 {
		if _, err = tx.ExecContext(ctx, `UPDATE documents SET updated_at = ? WHERE id = ?`, now, documentID); err != nil {
			return 0, 0, fmt.Errorf("failed to touch document: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit events: %w", err)
	}

	return accepted, duplicates, nil
}

// EventsAfter returns events with order > after in ascending order
func (s *Storage) EventsAfter(ctx context.Context, documentID string, after int64) (events []models.Event, err error) {
	query := `
		SELECT event_order, event_type, event_data
		FROM events
		WHERE document_id = ? AND event_order > ?
		ORDER BY event_order ASC
	`

	rows, err := s.db.QueryContext(ctx, query, documentID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	events = make([]models.Event, 0)
	for rows.Next() {
		var (
			ev   models.Event
			typ  string
			data []byte
		)
		if err := rows.Scan(&ev.Order, &typ, &data); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Type = models.EventType(typ)
		ev.Payload = data
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// LastEventOrder returns the highest stored order or 0
func (s *Storage) LastEventOrder(ctx context.Context, documentID string) (int64, error) {
	var last int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(event_order), 0) FROM events WHERE document_id = ?`,
		documentID,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("failed to get last event order: %w", err)
	}
	return last, nil
}
