package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justiceplatform/courtnotify/internal/remote"
	"github.com/justiceplatform/courtnotify/internal/service"
)

type fakeLookup struct {
	org   *remote.Organisation
	err   error
	calls int
}

func (f *fakeLookup) Lookup(_ context.Context, _, _ string) (*remote.Organisation, error) {
	f.calls++
	return f.org, f.err
}

func TestEnrichProsecutor_SkipsNamedOrganisation(t *testing.T) {
	lookup := &fakeLookup{}
	svc := service.NewSummonsService(lookup, slog.Default())

	summons := &service.Summons{
		CaseID:         "case-7",
		CorrelationID:  "corr-1",
		ProsecutorName: "Environment Agency",
	}
	require.NoError(t, svc.EnrichProsecutor(context.Background(), summons))

	// Reference data must not be consulted at all.
	assert.Zero(t, lookup.calls)
	assert.Equal(t, "Environment Agency", summons.ProsecutorName)
}

func TestEnrichProsecutor_LooksUpAuthority(t *testing.T) {
	lookup := &fakeLookup{org: &remote.Organisation{
		ID: "auth-9", Name: "Crown Prosecution Service", Address: "102 Petty France",
	}}
	svc := service.NewSummonsService(lookup, slog.Default())

	summons := &service.Summons{
		CaseID:                "case-7",
		CorrelationID:         "corr-1",
		ProsecutorAuthorityID: "auth-9",
	}
	require.NoError(t, svc.EnrichProsecutor(context.Background(), summons))
	assert.Equal(t, "Crown Prosecution Service", summons.ProsecutorName)
	assert.Equal(t, "102 Petty France", summons.ProsecutorAddress)
}

func TestEnrichProsecutor_MissingAuthorityID(t *testing.T) {
	svc := service.NewSummonsService(&fakeLookup{}, slog.Default())

	err := svc.EnrichProsecutor(context.Background(), &service.Summons{CaseID: "case-7"})
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestEnrichProsecutor_UnknownAuthorityLeftUnenriched(t *testing.T) {
	svc := service.NewSummonsService(&fakeLookup{org: nil}, slog.Default())

	summons := &service.Summons{
		CaseID:                "case-7",
		CorrelationID:         "corr-1",
		ProsecutorAuthorityID: "auth-unknown",
	}
	require.NoError(t, svc.EnrichProsecutor(context.Background(), summons))
	assert.Empty(t, summons.ProsecutorName)
}

func TestEnrichProsecutor_LookupErrorPropagates(t *testing.T) {
	svc := service.NewSummonsService(&fakeLookup{err: errors.New("refdata down")}, slog.Default())

	err := svc.EnrichProsecutor(context.Background(), &service.Summons{
		CorrelationID:         "corr-1",
		ProsecutorAuthorityID: "auth-9",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refdata down")
}
