package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client fetches public holidays from the reference-data calendar service.
// The response is authoritative only for the queried window.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a holiday calendar client for the given base URL.
// An empty base URL is a configuration error.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("holiday calendar base URL is not configured")
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// holidayEvent is one entry in the calendar service response.
type holidayEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// holidayResponse is the calendar service response envelope.
type holidayResponse struct {
	Events []holidayEvent `json:"events"`
}

// Holidays returns the public holidays for jurisdiction between from and to
// inclusive. Non-2xx responses and malformed dates are surfaced as errors.
func (c *Client) Holidays(ctx context.Context, jurisdiction string, from, to Date) (HolidaySet, error) {
	endpoint := fmt.Sprintf("%s/holidays/%s?from=%s&to=%s",
		c.baseURL, url.PathEscape(jurisdiction), from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling holiday calendar service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("holiday calendar service returned status %d for %s", resp.StatusCode, jurisdiction)
	}

	var body holidayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding holiday response: %w", err)
	}

	set := make(HolidaySet, len(body.Events))
	for _, ev := range body.Events {
		d, err := ParseDate(ev.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", ev.Title, err)
		}
		set.Add(d)
	}
	return set, nil
}
