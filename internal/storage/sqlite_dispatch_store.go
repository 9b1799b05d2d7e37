package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteDispatchStore implements DispatchStore backed by SQLite.
type SQLiteDispatchStore struct {
	db *sql.DB
}

// NewSQLiteDispatchStore returns a new SQLiteDispatchStore.
func NewSQLiteDispatchStore(db *sql.DB) *SQLiteDispatchStore {
	return &SQLiteDispatchStore{db: db}
}

// LogDispatch inserts a dispatch record into the database.
func (s *SQLiteDispatchStore) LogDispatch(ctx context.Context, entry DispatchLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatch_log
			(notification_id, correlation_id, case_id, channel, template, status, external_ref, error_msg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.NotificationID, entry.CorrelationID, entry.CaseID, entry.Channel,
		entry.Template, entry.Status, entry.ExternalRef, entry.ErrorMsg, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting dispatch log: %w", err)
	}
	return nil
}

// ListDispatches returns the most recent entries ordered by created_at descending.
func (s *SQLiteDispatchStore) ListDispatches(ctx context.Context, limit int) ([]DispatchLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, notification_id, correlation_id, case_id, channel, template, status, external_ref, error_msg, created_at
		FROM dispatch_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying dispatch log: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanDispatchEntries(rows)
}

// GetByNotificationID returns every dispatch attempt recorded for one
// notification, oldest first. An unknown ID yields an empty slice.
func (s *SQLiteDispatchStore) GetByNotificationID(ctx context.Context, notificationID string) ([]DispatchLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, notification_id, correlation_id, case_id, channel, template, status, external_ref, error_msg, created_at
		FROM dispatch_log
		WHERE notification_id = ?
		ORDER BY created_at ASC, id ASC`, notificationID)
	if err != nil {
		return nil, fmt.Errorf("querying dispatch log for notification %q: %w", notificationID, err)
	}
	defer func() { _ = rows.Close() }()
	return scanDispatchEntries(rows)
}

func scanDispatchEntries(rows *sql.Rows) ([]DispatchLogEntry, error) {
	var entries []DispatchLogEntry
	for rows.Next() {
		var e DispatchLogEntry
		if err := rows.Scan(&e.ID, &e.NotificationID, &e.CorrelationID, &e.CaseID,
			&e.Channel, &e.Template, &e.Status, &e.ExternalRef, &e.ErrorMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning dispatch log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dispatch log rows: %w", err)
	}
	return entries, nil
}
