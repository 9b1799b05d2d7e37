package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/hearing"
	"github.com/justiceplatform/courtnotify/internal/metrics"
	"github.com/justiceplatform/courtnotify/internal/notify"
	"github.com/justiceplatform/courtnotify/internal/storage"
)

// CaseResultedEvent is the inbound event carrying a case's or application's
// judicial results.
type CaseResultedEvent struct {
	CorrelationID string                   `json:"correlationId"`
	CaseID        string                   `json:"caseId"`
	Welsh         bool                     `json:"welsh"`
	Results       []hearing.JudicialResult `json:"results"`
}

// CaseResultedOutcome summarizes what the service did with one event.
type CaseResultedOutcome struct {
	Notified        bool           `json:"notified"`
	NotificationID  string         `json:"notificationId,omitempty"`
	TriggerResultID string         `json:"triggerResultId,omitempty"`
	ActionByDate    *calendar.Date `json:"actionByDate,omitempty"`
	MaterialID      string         `json:"materialId,omitempty"`
}

// Dispatcher is the channel-dispatch capability consumed by the service.
type Dispatcher interface {
	Dispatch(ctx context.Context, channel notify.Channel, env notify.Envelope) (notify.DispatchResult, error)
}

// NotificationService evaluates inbound case events and drives the
// notification pipeline.
type NotificationService interface {
	// HandleCaseResulted evaluates the event's judicial results and, when a
	// boxwork notification is warranted, computes the action-by date,
	// stores the rendered notice, sends it to print, delivers the case
	// document, and pushes the API notification. Any dispatch failure
	// aborts the remaining steps and propagates.
	HandleCaseResulted(ctx context.Context, event CaseResultedEvent) (*CaseResultedOutcome, error)
	// ListDispatches returns the most recent dispatch audit entries.
	ListDispatches(ctx context.Context, limit int) ([]storage.DispatchLogEntry, error)
	// GetNotificationDispatches returns the audit trail for one
	// notification ID. An unknown ID is a NotFoundError.
	GetNotificationDispatches(ctx context.Context, notificationID string) ([]storage.DispatchLogEntry, error)
	// WorkingDayAfter advances start by n working days in the configured
	// jurisdiction.
	WorkingDayAfter(ctx context.Context, start calendar.Date, n int) (calendar.Date, error)
}

// Config holds the notification service's collaborators and tuning.
type Config struct {
	Holidays     calendar.HolidaySource
	Jurisdiction string
	// WorkingDays is the boxwork action window: the action-by date is this
	// many working days after the triggering result's ordered date.
	WorkingDays int
	Dispatcher  Dispatcher
	Store       storage.DispatchStore
	Logger      *slog.Logger
}

type notificationServiceImpl struct {
	cfg Config
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(cfg Config) NotificationService {
	return &notificationServiceImpl{cfg: cfg}
}

func (s *notificationServiceImpl) HandleCaseResulted(ctx context.Context, event CaseResultedEvent) (*CaseResultedOutcome, error) {
	if event.CorrelationID == "" {
		return nil, &ValidationError{Field: "correlationId", Message: "must not be empty"}
	}
	if event.CaseID == "" {
		return nil, &ValidationError{Field: "caseId", Message: "must not be empty"}
	}

	decision := hearing.DecideBoxworkNotification(event.Results)
	if !decision.Notify {
		metrics.DecisionsTotal.WithLabelValues("skip").Inc()
		s.cfg.Logger.Info("no boxwork notification required",
			"case_id", event.CaseID, "correlation_id", event.CorrelationID)
		return &CaseResultedOutcome{Notified: false}, nil
	}
	metrics.DecisionsTotal.WithLabelValues("notify").Inc()

	trigger := decision.Trigger
	startDate := calendar.DateOf(time.Now())
	if trigger.OrderedDate != nil {
		startDate = *trigger.OrderedDate
	}

	actionBy, err := calendar.AddWorkingDays(ctx, s.cfg.Holidays, s.cfg.Jurisdiction, startDate, s.cfg.WorkingDays)
	if err != nil {
		return nil, fmt.Errorf("computing action-by date for case %q: %w", event.CaseID, err)
	}

	notificationID := uuid.NewString()
	template, err := notify.TemplateFor(notify.FormBoxworkNotice, event.Welsh)
	if err != nil {
		return nil, err
	}

	env := notify.Envelope{
		CorrelationID:  event.CorrelationID,
		NotificationID: notificationID,
		CaseID:         event.CaseID,
		Form:           notify.FormBoxworkNotice,
		Welsh:          event.Welsh,
		Payload:        boxworkPayload(trigger, actionBy),
	}

	// Store the rendered notice first: the print step needs the material ID.
	stored, err := s.dispatch(ctx, notify.ChannelFileStore, env, template)
	if err != nil {
		return nil, fmt.Errorf("storing boxwork notice for case %q: %w", event.CaseID, err)
	}
	env.MaterialID = stored.ExternalReference

	if _, err := s.dispatch(ctx, notify.ChannelLetter, env, template); err != nil {
		return nil, fmt.Errorf("sending boxwork letter for case %q: %w", event.CaseID, err)
	}

	if _, err := s.dispatch(ctx, notify.ChannelCaseDocument, env, template); err != nil {
		return nil, fmt.Errorf("delivering case document for case %q: %w", event.CaseID, err)
	}

	if _, err := s.dispatch(ctx, notify.ChannelAPINotification, env, template); err != nil {
		return nil, fmt.Errorf("pushing boxwork notification for case %q: %w", event.CaseID, err)
	}

	return &CaseResultedOutcome{
		Notified:        true,
		NotificationID:  notificationID,
		TriggerResultID: trigger.ID,
		ActionByDate:    &actionBy,
		MaterialID:      env.MaterialID,
	}, nil
}

// boxworkPayload builds the notification payload from the triggering result.
func boxworkPayload(trigger *hearing.JudicialResult, actionBy calendar.Date) map[string]any {
	payload := map[string]any{
		"actionByDate": actionBy.String(),
		"resultId":     trigger.ID,
	}
	if nh := trigger.NextHearing; nh != nil {
		payload["courtCentre"] = nh.CourtCentre.Name
		if nh.ListedStartDateTime != nil {
			payload["listedStartDateTime"] = nh.ListedStartDateTime.Format(time.RFC3339)
		}
		if nh.WeekCommencingDate != nil {
			payload["weekCommencingDate"] = nh.WeekCommencingDate.String()
		}
	}
	return payload
}

// dispatch runs one channel dispatch and writes the audit entry. A failed
// audit write is logged but does not undo or fail an already-delivered
// dispatch.
func (s *notificationServiceImpl) dispatch(ctx context.Context, channel notify.Channel, env notify.Envelope, template string) (notify.DispatchResult, error) {
	res, err := s.cfg.Dispatcher.Dispatch(ctx, channel, env)

	entry := storage.DispatchLogEntry{
		NotificationID: env.NotificationID,
		CorrelationID:  env.CorrelationID,
		CaseID:         env.CaseID,
		Channel:        string(channel),
		Template:       template,
		Status:         storage.DispatchStatusSent,
		ExternalRef:    res.ExternalReference,
		CreatedAt:      time.Now(),
	}
	if err != nil {
		entry.Status = storage.DispatchStatusFailed
		entry.ErrorMsg = err.Error()
	}
	if logErr := s.cfg.Store.LogDispatch(ctx, entry); logErr != nil {
		s.cfg.Logger.Error("failed to write dispatch audit entry",
			"notification_id", env.NotificationID, "channel", string(channel), "error", logErr)
	}
	return res, err
}

func (s *notificationServiceImpl) ListDispatches(ctx context.Context, limit int) ([]storage.DispatchLogEntry, error) {
	return s.cfg.Store.ListDispatches(ctx, limit)
}

func (s *notificationServiceImpl) GetNotificationDispatches(ctx context.Context, notificationID string) ([]storage.DispatchLogEntry, error) {
	if notificationID == "" {
		return nil, &ValidationError{Field: "notificationId", Message: "must not be empty"}
	}
	entries, err := s.cfg.Store.GetByNotificationID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &NotFoundError{Resource: "notification", ID: notificationID}
	}
	return entries, nil
}

func (s *notificationServiceImpl) WorkingDayAfter(ctx context.Context, start calendar.Date, n int) (calendar.Date, error) {
	if n < 0 {
		return calendar.Date{}, &ValidationError{Field: "days", Message: "must be non-negative"}
	}
	return calendar.AddWorkingDays(ctx, s.cfg.Holidays, s.cfg.Jurisdiction, start, n)
}
