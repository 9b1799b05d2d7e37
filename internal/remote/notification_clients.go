package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// CaseDocumentClient posts notification payloads to the case-document
// delivery endpoint.
type CaseDocumentClient struct {
	url  string
	http *http.Client
}

// NewCaseDocumentClient creates a client for the case-document endpoint.
// An empty URL is a configuration error.
func NewCaseDocumentClient(url string) (*CaseDocumentClient, error) {
	if url == "" {
		return nil, fmt.Errorf("case-document endpoint URL is not configured")
	}
	return &CaseDocumentClient{url: url, http: newHTTPClient()}, nil
}

// Post delivers body with a single synchronous POST.
func (c *CaseDocumentClient) Post(ctx context.Context, body []byte) (int, error) {
	return postJSON(ctx, c.http, c.url, bytes.NewReader(body))
}

// NotificationAPIClient posts notification payloads to the generic API
// notification endpoint.
type NotificationAPIClient struct {
	url  string
	http *http.Client
}

// NewNotificationAPIClient creates a client for the API notification
// endpoint. An empty URL is a configuration error.
func NewNotificationAPIClient(url string) (*NotificationAPIClient, error) {
	if url == "" {
		return nil, fmt.Errorf("API notification endpoint URL is not configured")
	}
	return &NotificationAPIClient{url: url, http: newHTTPClient()}, nil
}

// Post delivers body with a single synchronous POST.
func (c *NotificationAPIClient) Post(ctx context.Context, body []byte) (int, error) {
	return postJSON(ctx, c.http, c.url, bytes.NewReader(body))
}
