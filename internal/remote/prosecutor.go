package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Organisation is the reference-data record for a prosecuting authority.
type Organisation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ProsecutorClient looks up prosecuting authorities in the reference-data
// service for the summons enrichment flow.
type ProsecutorClient struct {
	baseURL string
	http    *http.Client
}

// NewProsecutorClient creates a reference-data client for the given base
// URL. An empty base URL is a configuration error.
func NewProsecutorClient(baseURL string) (*ProsecutorClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("reference data base URL is not configured")
	}
	return &ProsecutorClient{baseURL: baseURL, http: newHTTPClient()}, nil
}

// Lookup fetches the organisation record for authorityID. A 404 means the
// authority is unknown and returns (nil, nil); other non-2xx statuses are
// errors. The correlation ID travels on the request for cross-service
// joining.
func (c *ProsecutorClient) Lookup(ctx context.Context, correlationID, authorityID string) (*Organisation, error) {
	endpoint := fmt.Sprintf("%s/prosecutors/%s", c.baseURL, url.PathEscape(authorityID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building prosecutor lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-Id", correlationID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling reference data service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("reference data service returned status %d for authority %q", resp.StatusCode, authorityID)
	}

	var org Organisation
	if err := json.NewDecoder(resp.Body).Decode(&org); err != nil {
		return nil, fmt.Errorf("decoding prosecutor record: %w", err)
	}
	return &org, nil
}
