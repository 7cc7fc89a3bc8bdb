package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// maxErrorBody caps how much of an error response is kept in RemoteError.
const maxErrorBody = 512

// Auth holds the bearer credential applied to every request.
type Auth struct {
	Token  string // OAuth2 access token.
	Scheme string // Scheme prefix (default: "Bearer").
}

// Adapter holds the shared HTTP plumbing for the Connect API: base URL, auth,
// extra headers, and JSON helpers. It is safe for concurrent use.
type Adapter struct {
	BaseURL string            // API base URL (no trailing slash).
	Auth    Auth              // Authentication settings.
	Client  *http.Client      // HTTP client; falls back to a default with a timeout.
	Headers map[string]string // Extra headers applied to every request.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// httpClient returns the configured client or a cached default client with a 30-second timeout.
func (a *Adapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{Timeout: 30 * time.Second}
	})

	return a.defaultClient
}

// NewRequest builds an *http.Request with the base URL, query, auth, and
// custom headers already applied.
func (a *Adapter) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := a.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if a.Auth.Token != "" {
		scheme := a.Auth.Scheme
		if scheme == "" {
			scheme = "Bearer"
		}
		req.Header.Set("Authorization", scheme+" "+a.Auth.Token)
	}

	req.Header.Set("Accept", "application/json")

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *Adapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// GetJSON sends a GET and returns the raw JSON body.
func (a *Adapter) GetJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return a.send(ctx, http.MethodGet, path, query, nil)
}

// SendJSON marshals payload (when non-nil) and sends it with the given method,
// returning the raw JSON body. An empty response body yields a nil payload.
func (a *Adapter) SendJSON(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	return a.send(ctx, method, path, nil, body)
}

func (a *Adapter) send(ctx context.Context, method, path string, query url.Values, body io.Reader) (json.RawMessage, error) {
	req, err := a.NewRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       truncate(respBody),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   truncate(respBody),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("decode response: invalid JSON from %s", path)
	}

	return json.RawMessage(respBody), nil
}

func truncate(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
