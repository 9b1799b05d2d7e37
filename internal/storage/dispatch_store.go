package storage

import (
	"context"
	"time"
)

// Dispatch outcome statuses recorded in the audit log.
const (
	DispatchStatusSent   = "sent"
	DispatchStatusFailed = "failed"
)

// DispatchLogEntry records a single notification dispatch attempt.
type DispatchLogEntry struct {
	ID             int64     `json:"id"`
	NotificationID string    `json:"notification_id"`
	CorrelationID  string    `json:"correlation_id"`
	CaseID         string    `json:"case_id"`
	Channel        string    `json:"channel"`
	Template       string    `json:"template"`
	Status         string    `json:"status"`
	ExternalRef    string    `json:"external_ref"`
	ErrorMsg       string    `json:"error_msg"`
	CreatedAt      time.Time `json:"created_at"`
}

// DispatchStore defines the interface for persisting the dispatch audit log.
type DispatchStore interface {
	// LogDispatch records a dispatch attempt.
	LogDispatch(ctx context.Context, entry DispatchLogEntry) error
	// ListDispatches returns the most recent entries, up to limit.
	ListDispatches(ctx context.Context, limit int) ([]DispatchLogEntry, error)
	// GetByNotificationID returns every attempt recorded for one
	// notification, oldest first. An unknown ID yields an empty slice.
	GetByNotificationID(ctx context.Context, notificationID string) ([]DispatchLogEntry, error)
}
