package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// FileStoreClient stores rendered notification artifacts in the file
// storage service and resolves material IDs to retrieval URLs.
type FileStoreClient struct {
	baseURL string
	http    *http.Client
}

// NewFileStoreClient creates a file-store client for the given base URL.
// An empty base URL is a configuration error.
func NewFileStoreClient(baseURL string) (*FileStoreClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("file store base URL is not configured")
	}
	return &FileStoreClient{baseURL: baseURL, http: newHTTPClient()}, nil
}

// storeResponse is the file-store creation response.
type storeResponse struct {
	ID string `json:"id"`
}

// Store uploads content with its metadata as a multipart POST and returns
// the identifier minted by the file store. Storage failures are wrapped
// and surfaced, never retried here.
func (c *FileStoreClient) Store(ctx context.Context, metadata map[string]any, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaPart, err := mw.CreateFormField("metadata")
	if err != nil {
		return "", fmt.Errorf("creating metadata part: %w", err)
	}
	if err := json.NewEncoder(metaPart).Encode(metadata); err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}

	filePart, err := mw.CreateFormFile("file", "artifact")
	if err != nil {
		return "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(filePart, content); err != nil {
		return "", fmt.Errorf("writing artifact content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return "", fmt.Errorf("building file store request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling file store: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !is2xx(resp.StatusCode) {
		return "", fmt.Errorf("file store returned status %d", resp.StatusCode)
	}

	var body storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding file store response: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("file store response carried no identifier")
	}
	return body.ID, nil
}

// MaterialURL resolves a stored material ID to its retrieval URL for the
// print pipeline.
func (c *FileStoreClient) MaterialURL(_ context.Context, materialID string) (string, error) {
	if materialID == "" {
		return "", fmt.Errorf("material ID is empty")
	}
	return fmt.Sprintf("%s/files/%s", c.baseURL, materialID), nil
}
