package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justiceplatform/courtnotify/internal/remote"
)

// Summons is the slice of the summons flow this service enriches.
type Summons struct {
	CaseID        string `json:"caseId"`
	CorrelationID string `json:"correlationId"`
	// ProsecutorName is set when the case already names an organisational
	// prosecutor; reference data is then never consulted.
	ProsecutorName        string `json:"prosecutorName,omitempty"`
	ProsecutorAddress     string `json:"prosecutorAddress,omitempty"`
	ProsecutorAuthorityID string `json:"prosecutorAuthorityId,omitempty"`
}

// ProsecutorLookup is the reference-data capability the summons flow uses.
type ProsecutorLookup interface {
	Lookup(ctx context.Context, correlationID, authorityID string) (*remote.Organisation, error)
}

// SummonsService enriches summonses with prosecutor reference data.
type SummonsService struct {
	lookup ProsecutorLookup
	logger *slog.Logger
}

// NewSummonsService creates a SummonsService.
func NewSummonsService(lookup ProsecutorLookup, logger *slog.Logger) *SummonsService {
	return &SummonsService{lookup: lookup, logger: logger}
}

// EnrichProsecutor fills in the summons's prosecutor details from reference
// data. A summons that already names an organisational prosecutor is left
// untouched and no lookup is made. An authority unknown to reference data
// is logged and left unenriched rather than failing the summons.
func (s *SummonsService) EnrichProsecutor(ctx context.Context, summons *Summons) error {
	if summons.ProsecutorName != "" {
		// Organisational prosecutor already on the case.
		return nil
	}
	if summons.ProsecutorAuthorityID == "" {
		return &ValidationError{Field: "prosecutorAuthorityId", Message: "required when no prosecutor is named"}
	}

	org, err := s.lookup.Lookup(ctx, summons.CorrelationID, summons.ProsecutorAuthorityID)
	if err != nil {
		return fmt.Errorf("looking up prosecutor %q: %w", summons.ProsecutorAuthorityID, err)
	}
	if org == nil {
		s.logger.Warn("prosecutor authority not in reference data",
			"authority_id", summons.ProsecutorAuthorityID,
			"correlation_id", summons.CorrelationID)
		return nil
	}

	summons.ProsecutorName = org.Name
	summons.ProsecutorAddress = org.Address
	return nil
}
