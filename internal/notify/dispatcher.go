package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/justiceplatform/courtnotify/internal/commandbus"
	"github.com/justiceplatform/courtnotify/internal/metrics"
)

// postageFirstClass is the postage class stamped on every print command.
const postageFirstClass = "first"

// Dispatcher delivers one outbound notification per Dispatch call, on the
// channel named in the call. It holds no state between calls and performs
// no retries: every transport or storage failure surfaces to the caller,
// and there is no half-sent state to roll back. Idempotency is the
// caller's (or the bus's) concern — dispatching the same notification ID
// twice emits two actions.
type Dispatcher struct {
	bus       commandbus.Sender
	materials MaterialURLResolver
	caseDoc   RestPoster
	apiNotify RestPoster
	artifacts ArtifactStore
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given channel collaborators.
func NewDispatcher(
	bus commandbus.Sender,
	materials MaterialURLResolver,
	caseDoc RestPoster,
	apiNotify RestPoster,
	artifacts ArtifactStore,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		bus:       bus,
		materials: materials,
		caseDoc:   caseDoc,
		apiNotify: apiNotify,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Dispatch delivers env on channel and reports the synchronous outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, channel Channel, env Envelope) (DispatchResult, error) {
	res, err := d.dispatch(ctx, channel, env)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		d.logger.Error("dispatch failed",
			"channel", string(channel),
			"notification_id", env.NotificationID,
			"correlation_id", env.CorrelationID,
			"error", err)
	} else {
		d.logger.Info("dispatched notification",
			"channel", string(channel),
			"notification_id", env.NotificationID,
			"correlation_id", env.CorrelationID,
			"external_ref", res.ExternalReference)
	}
	metrics.DispatchesTotal.WithLabelValues(string(channel), outcome).Inc()
	return res, err
}

func (d *Dispatcher) dispatch(ctx context.Context, channel Channel, env Envelope) (DispatchResult, error) {
	switch channel {
	case ChannelLetter:
		return d.dispatchLetter(ctx, env)
	case ChannelCaseDocument:
		return d.dispatchRest(ctx, d.caseDoc, env)
	case ChannelAPINotification:
		return d.dispatchRest(ctx, d.apiNotify, env)
	case ChannelFileStore:
		return d.dispatchFileStore(ctx, env)
	default:
		return DispatchResult{}, fmt.Errorf("unknown dispatch channel %q", channel)
	}
}

// dispatchLetter resolves the material URL and emits exactly one print
// command. The command's correlation ID is the envelope's, copied verbatim.
func (d *Dispatcher) dispatchLetter(ctx context.Context, env Envelope) (DispatchResult, error) {
	letterURL, err := d.materials.MaterialURL(ctx, env.MaterialID)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("resolving material %q: %w", env.MaterialID, err)
	}

	err = d.bus.SendAsAdmin(commandbus.Command{
		Type:          commandbus.CommandPrintLetter,
		CorrelationID: env.CorrelationID,
		Payload: map[string]string{
			"notificationId": env.NotificationID,
			"letterUrl":      letterURL,
			"postage":        postageFirstClass,
		},
	})
	if err != nil {
		return DispatchResult{}, fmt.Errorf("emitting print command for notification %q: %w", env.NotificationID, err)
	}
	return DispatchResult{Success: true}, nil
}

// dispatchRest serializes the payload and performs a single synchronous
// POST. A non-2xx status is a dispatch failure, never a silent success.
func (d *Dispatcher) dispatchRest(ctx context.Context, poster RestPoster, env Envelope) (DispatchResult, error) {
	body, err := json.Marshal(restPayload(env))
	if err != nil {
		return DispatchResult{}, fmt.Errorf("encoding notification payload: %w", err)
	}

	status, err := poster.Post(ctx, body)
	if err != nil {
		return DispatchResult{StatusCode: status}, fmt.Errorf("posting notification %q: %w", env.NotificationID, err)
	}
	return DispatchResult{Success: true, StatusCode: status}, nil
}

// restPayload is the wire shape shared by both REST endpoint families.
func restPayload(env Envelope) map[string]any {
	payload := map[string]any{
		"notificationId": env.NotificationID,
		"correlationId":  env.CorrelationID,
		"caseId":         env.CaseID,
	}
	for k, v := range env.Payload {
		payload[k] = v
	}
	return payload
}

// dispatchFileStore selects the template, renders the payload into a
// stream, and stores it. The stored identifier comes back as
// ExternalReference; storage failures are wrapped, never suppressed.
func (d *Dispatcher) dispatchFileStore(ctx context.Context, env Envelope) (DispatchResult, error) {
	tmpl, err := TemplateFor(env.Form, env.Welsh)
	if err != nil {
		return DispatchResult{}, err
	}

	content, err := json.Marshal(env.Payload)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("encoding artifact payload: %w", err)
	}

	metadata := map[string]any{
		"templateName":   tmpl,
		"notificationId": env.NotificationID,
		"correlationId":  env.CorrelationID,
		"caseId":         env.CaseID,
	}

	id, err := d.artifacts.Store(ctx, metadata, bytes.NewReader(content))
	if err != nil {
		return DispatchResult{}, fmt.Errorf("storing artifact for notification %q: %w", env.NotificationID, err)
	}
	return DispatchResult{Success: true, ExternalReference: id}, nil
}
