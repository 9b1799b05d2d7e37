// Package remote contains the HTTP adapters for the service's external
// collaborators: the two REST notification endpoints, the file storage
// service, the material URL generator, and the reference-data prosecutor
// lookup. All clients share an instrumented http.Client and surface non-2xx
// responses as errors.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// newHTTPClient builds the shared instrumented HTTP client.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// is2xx reports whether status is a success status.
func is2xx(status int) bool {
	return status >= 200 && status <= 299
}

// postJSON performs one synchronous POST of a JSON body and returns the
// response status. A non-2xx status is returned alongside an error so
// callers keep the code for reporting.
func postJSON(ctx context.Context, client *http.Client, url string, body io.Reader) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !is2xx(resp.StatusCode) {
		return resp.StatusCode, fmt.Errorf("endpoint %s returned status %d", url, resp.StatusCode)
	}
	return resp.StatusCode, nil
}
