package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/service"
)

// handleCaseResulted accepts an inbound case/application resulted event,
// runs the boxwork decision and, when warranted, the dispatch pipeline.
func (s *Server) handleCaseResulted(w http.ResponseWriter, r *http.Request) {
	var event service.CaseResultedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	outcome, err := s.notificationSvc.HandleCaseResulted(r.Context(), event)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		s.logger.Error("case-resulted handling failed",
			"correlation_id", event.CorrelationID, "case_id", event.CaseID, "error", err)
		writeError(w, http.StatusBadGateway, "notification dispatch failed")
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// handleListDispatches returns recent dispatch audit entries.
// Accepts an optional ?limit=N query parameter (default 50).
func (s *Server) handleListDispatches(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.notificationSvc.ListDispatches(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list dispatches")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleGetNotificationDispatches returns the full audit trail for one
// notification ID; an unknown ID is a 404.
func (s *Server) handleGetNotificationDispatches(w http.ResponseWriter, r *http.Request) {
	entries, err := s.notificationSvc.GetNotificationDispatches(r.Context(), chi.URLParam(r, "notificationId"))
	if err != nil {
		var nfErr *service.NotFoundError
		if errors.As(err, &nfErr) {
			writeError(w, http.StatusNotFound, nfErr.Error())
			return
		}
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load dispatches")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleWorkingDay computes the date N working days after a start date in
// the configured jurisdiction: GET /working-day?start=2023-11-01&days=3.
func (s *Server) handleWorkingDay(w http.ResponseWriter, r *http.Request) {
	start, err := calendar.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 0 {
		writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}

	result, err := s.notificationSvc.WorkingDayAfter(r.Context(), start, days)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "working-day calculation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"start":  start.String(),
		"result": result.String(),
	})
}
