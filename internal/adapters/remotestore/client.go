// Package remotestore talks to the snapshot endpoint: GET for the current
// catalog, POST for an idempotent replace-all write authorized by an edit
// key header.
package remotestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lookbook/internal/application"
	"lookbook/internal/domain"
	"lookbook/internal/ports"
)

// HeaderEditKey is the header carrying the write credential.
const HeaderEditKey = "X-Edit-Key"

// maxErrorBody bounds how much of an error response body is read for the
// diagnostic excerpt.
const maxErrorBody = 4096

// Client implements ports.SnapshotStore over HTTP.
type Client struct {
	endpoint    string
	fallbackURL string
	httpClient  *http.Client
}

var _ ports.SnapshotStore = (*Client)(nil)

// New creates a client for the data endpoint. fallbackURL, when non-empty,
// is a secondary static snapshot used when the endpoint cannot be read; it
// is never written to.
func New(endpoint, fallbackURL string) *Client {
	return &Client{
		endpoint:    endpoint,
		fallbackURL: fallbackURL,
		httpClient:  &http.Client{},
	}
}

// Load fetches the snapshot from the endpoint, falling back to the static
// snapshot URL for the session when the endpoint fails.
func (c *Client) Load(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := c.get(ctx, c.endpoint)
	if err == nil {
		return catalog, nil
	}
	if c.fallbackURL == "" {
		return nil, err
	}
	catalog, fallbackErr := c.get(ctx, c.fallbackURL)
	if fallbackErr != nil {
		return nil, fmt.Errorf("load failed (%v); fallback: %w", err, fallbackErr)
	}
	return catalog, nil
}

func (c *Client) get(ctx context.Context, url string) (*domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, application.NewTransportError(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, application.NewTransportError(resp.StatusCode, errorDetail(resp.Body))
	}

	catalog := domain.NewCatalog()
	if err := json.NewDecoder(resp.Body).Decode(catalog); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, &application.ValidationError{Field: "snapshot", Message: err.Error()}
	}
	return catalog, nil
}

// saveEnvelope is the write response: {ok: true, data: <echoed snapshot>}.
type saveEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Save POSTs the full snapshot. A 401 maps to application.ErrAuthRequired
// so the caller can run its one credential prompt/retry; everything else
// non-2xx becomes a TransportError with a bounded server detail.
func (c *Client) Save(ctx context.Context, snapshot *domain.Catalog, credential string) (*domain.Catalog, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set(HeaderEditKey, credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, application.NewTransportError(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, application.ErrAuthRequired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, application.NewTransportError(resp.StatusCode, errorDetail(resp.Body))
	}

	var envelope saveEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding save response: %w", err)
	}
	if !envelope.OK {
		return nil, application.NewTransportError(resp.StatusCode, envelope.Error)
	}

	echoed := domain.NewCatalog()
	if err := json.Unmarshal(envelope.Data, echoed); err != nil {
		return nil, fmt.Errorf("decoding echoed snapshot: %w", err)
	}
	return echoed, nil
}

// errorDetail extracts a short diagnostic from an error response: the
// {error} field when the body is the JSON error envelope, otherwise a raw
// excerpt. Returns "" when nothing useful is there.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(bytes.TrimSpace(raw))
}
