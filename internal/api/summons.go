package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/justiceplatform/courtnotify/internal/service"
)

// handleEnrichSummons fills in the prosecutor details on a summons from
// reference data and returns the enriched summons.
func (s *Server) handleEnrichSummons(w http.ResponseWriter, r *http.Request) {
	var summons service.Summons
	if err := json.NewDecoder(r.Body).Decode(&summons); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.summonsSvc.EnrichProsecutor(r.Context(), &summons); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		s.logger.Error("summons enrichment failed",
			"correlation_id", summons.CorrelationID, "case_id", summons.CaseID, "error", err)
		writeError(w, http.StatusBadGateway, "prosecutor lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, summons)
}
