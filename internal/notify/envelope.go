package notify

import (
	"context"
	"io"
)

// Channel selects the outbound delivery path for a dispatch.
type Channel string

// Supported dispatch channels.
const (
	// ChannelLetter emits a print command on the command bus.
	ChannelLetter Channel = "letter"
	// ChannelCaseDocument posts to the case-document delivery endpoint.
	ChannelCaseDocument Channel = "case-document"
	// ChannelAPINotification posts to the generic API notification endpoint.
	ChannelAPINotification Channel = "api-notification"
	// ChannelFileStore renders and stores the artifact, returning its ID.
	ChannelFileStore Channel = "file-store"
)

// Envelope is one dispatch request. CorrelationID is the inbound event's
// correlation identifier and is propagated verbatim onto whatever the
// channel emits. Ownership of the payload transfers to the transport once
// sent; the dispatcher retains no copy.
type Envelope struct {
	CorrelationID  string
	NotificationID string
	CaseID         string
	MaterialID     string
	Form           FormType
	Welsh          bool
	Payload        map[string]any
}

// DispatchResult reports the synchronous outcome of one dispatch attempt.
type DispatchResult struct {
	Success bool
	// ExternalReference is the identifier minted by the sink, when the
	// channel produces one (e.g. the stored-file ID).
	ExternalReference string
	// StatusCode is the HTTP status for REST channels, zero otherwise.
	StatusCode int
}

// MaterialURLResolver resolves a stored material ID to a retrieval URL for
// the print pipeline.
type MaterialURLResolver interface {
	MaterialURL(ctx context.Context, materialID string) (string, error)
}

// RestPoster is the single-POST capability the REST channels consume.
// A non-2xx response must be reported as an error carrying the status.
type RestPoster interface {
	Post(ctx context.Context, body []byte) (statusCode int, err error)
}

// ArtifactStore is the byte-stream storage capability for the file channel.
type ArtifactStore interface {
	Store(ctx context.Context, metadata map[string]any, content io.Reader) (string, error)
}
