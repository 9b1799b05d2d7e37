package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/service"
	"github.com/justiceplatform/courtnotify/internal/storage"
)

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) HandleCaseResulted(ctx context.Context, event service.CaseResultedEvent) (*service.CaseResultedOutcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseResultedOutcome), args.Error(1)
}

func (m *MockNotificationService) ListDispatches(ctx context.Context, limit int) ([]storage.DispatchLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DispatchLogEntry), args.Error(1)
}

func (m *MockNotificationService) GetNotificationDispatches(ctx context.Context, notificationID string) ([]storage.DispatchLogEntry, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.DispatchLogEntry), args.Error(1)
}

func (m *MockNotificationService) WorkingDayAfter(ctx context.Context, start calendar.Date, n int) (calendar.Date, error) {
	args := m.Called(ctx, start, n)
	return args.Get(0).(calendar.Date), args.Error(1)
}
