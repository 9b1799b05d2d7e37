package api_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/justiceplatform/courtnotify/internal/api"
	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/remote"
	"github.com/justiceplatform/courtnotify/internal/service"
	svcmocks "github.com/justiceplatform/courtnotify/internal/service/mocks"
	"github.com/justiceplatform/courtnotify/internal/storage"
)

// stubLookup is a canned prosecutor reference-data lookup.
type stubLookup struct {
	org *remote.Organisation
	err error
}

func (s *stubLookup) Lookup(_ context.Context, _, _ string) (*remote.Organisation, error) {
	return s.org, s.err
}

// testHarness bundles the mocks and router used by every test.
type testHarness struct {
	notificationSvc *svcmocks.MockNotificationService
	lookup          *stubLookup
	router          chi.Router
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	notificationSvc := new(svcmocks.MockNotificationService)
	lookup := &stubLookup{}
	srv := api.New(notificationSvc, service.NewSummonsService(lookup, slog.Default()), slog.Default())

	r := chi.NewRouter()
	srv.Mount(r)

	return &testHarness{notificationSvc: notificationSvc, lookup: lookup, router: r}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// ---------- case-resulted ----------

func TestCaseResulted_Success(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("HandleCaseResulted", mock.Anything, mock.MatchedBy(func(e service.CaseResultedEvent) bool {
		return e.CorrelationID == "corr-1" && e.CaseID == "case-7"
	})).Return(&service.CaseResultedOutcome{Notified: true, NotificationID: "notif-1"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/events/case-resulted",
		strings.NewReader(`{"correlationId":"corr-1","caseId":"case-7","results":[]}`))
	w := h.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notified":true`)
	h.notificationSvc.AssertExpectations(t)
}

func TestCaseResulted_InvalidBody(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/events/case-resulted", strings.NewReader("{not json"))
	w := h.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.notificationSvc.AssertNotCalled(t, "HandleCaseResulted", mock.Anything, mock.Anything)
}

func TestCaseResulted_ValidationError(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("HandleCaseResulted", mock.Anything, mock.Anything).
		Return(nil, &service.ValidationError{Field: "correlationId", Message: "must not be empty"})

	req := httptest.NewRequest(http.MethodPost, "/events/case-resulted",
		strings.NewReader(`{"caseId":"case-7"}`))
	w := h.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "correlationId")
}

func TestCaseResulted_DispatchFailure(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("HandleCaseResulted", mock.Anything, mock.Anything).
		Return(nil, errors.New("file store returned status 507"))

	req := httptest.NewRequest(http.MethodPost, "/events/case-resulted",
		strings.NewReader(`{"correlationId":"corr-1","caseId":"case-7"}`))
	w := h.do(req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// ---------- dispatches ----------

func TestListDispatches_DefaultLimit(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("ListDispatches", mock.Anything, 50).
		Return([]storage.DispatchLogEntry{{NotificationID: "n-1", Channel: "letter"}}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/dispatches", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "n-1")
	h.notificationSvc.AssertExpectations(t)
}

func TestListDispatches_ExplicitLimit(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("ListDispatches", mock.Anything, 5).
		Return([]storage.DispatchLogEntry{}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/dispatches?limit=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	h.notificationSvc.AssertExpectations(t)
}

func TestListDispatches_StoreError(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("ListDispatches", mock.Anything, 50).
		Return(nil, errors.New("db down"))

	w := h.do(httptest.NewRequest(http.MethodGet, "/dispatches", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetNotificationDispatches_Found(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("GetNotificationDispatches", mock.Anything, "notif-1").
		Return([]storage.DispatchLogEntry{
			{NotificationID: "notif-1", Channel: "letter"},
			{NotificationID: "notif-1", Channel: "api-notification"},
		}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/dispatches/notif-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"channel":"letter"`)
	h.notificationSvc.AssertExpectations(t)
}

func TestGetNotificationDispatches_NotFound(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("GetNotificationDispatches", mock.Anything, "missing").
		Return(nil, &service.NotFoundError{Resource: "notification", ID: "missing"})

	w := h.do(httptest.NewRequest(http.MethodGet, "/dispatches/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "missing")
}

// ---------- working-day ----------

func TestWorkingDay_Success(t *testing.T) {
	h := newHarness(t)
	start, err := calendar.ParseDate("2023-11-01")
	require.NoError(t, err)
	result, err := calendar.ParseDate("2023-11-08")
	require.NoError(t, err)

	h.notificationSvc.On("WorkingDayAfter", mock.Anything, start, 3).Return(result, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/working-day?start=2023-11-01&days=3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2023-11-08")
}

func TestWorkingDay_BadParams(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/working-day?start=01/11/2023&days=3", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(httptest.NewRequest(http.MethodGet, "/working-day?start=2023-11-01&days=-2", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(httptest.NewRequest(http.MethodGet, "/working-day?start=2023-11-01", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkingDay_UpstreamFailure(t *testing.T) {
	h := newHarness(t)
	start, err := calendar.ParseDate("2023-11-01")
	require.NoError(t, err)

	h.notificationSvc.On("WorkingDayAfter", mock.Anything, start, 3).
		Return(calendar.Date{}, errors.New("holiday service down"))

	w := h.do(httptest.NewRequest(http.MethodGet, "/working-day?start=2023-11-01&days=3", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// ---------- summons enrichment ----------

func TestEnrichSummons_Success(t *testing.T) {
	h := newHarness(t)
	h.lookup.org = &remote.Organisation{Name: "Crown Prosecution Service", Address: "102 Petty France, London"}

	req := httptest.NewRequest(http.MethodPost, "/summons/enrich",
		strings.NewReader(`{"caseId":"case-7","correlationId":"corr-1","prosecutorAuthorityId":"auth-9"}`))
	w := h.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Crown Prosecution Service")
	assert.Contains(t, w.Body.String(), "Petty France")
}

func TestEnrichSummons_MissingAuthority(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/summons/enrich",
		strings.NewReader(`{"caseId":"case-7","correlationId":"corr-1"}`))
	w := h.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "prosecutorAuthorityId")
}

func TestEnrichSummons_LookupFailure(t *testing.T) {
	h := newHarness(t)
	h.lookup.err = errors.New("reference data unavailable")

	req := httptest.NewRequest(http.MethodPost, "/summons/enrich",
		strings.NewReader(`{"caseId":"case-7","correlationId":"corr-1","prosecutorAuthorityId":"auth-9"}`))
	w := h.do(req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
