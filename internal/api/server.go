// Package api exposes the REST handlers for the notification service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justiceplatform/courtnotify/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	notificationSvc service.NotificationService
	summonsSvc      *service.SummonsService
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided services.
func New(notificationSvc service.NotificationService, summonsSvc *service.SummonsService, logger *slog.Logger) *Server {
	return &Server{
		notificationSvc: notificationSvc,
		summonsSvc:      summonsSvc,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Inbound case/application events
	r.Post("/events/case-resulted", s.handleCaseResulted)

	// Dispatch audit log
	r.Get("/dispatches", s.handleListDispatches)
	r.Get("/dispatches/{notificationId}", s.handleGetNotificationDispatches)

	// Business-day calculator utility
	r.Get("/working-day", s.handleWorkingDay)

	// Summons enrichment
	r.Post("/summons/enrich", s.handleEnrichSummons)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
