// Package api is the HTTP client for the oncoatlas backend. A single Client
// performs every call, uniformly attaching headers and normalizing transport
// and application failures into one error taxonomy (see errors.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to one oncoatlas backend, identified by a base URL shared by
// all calls. It performs no retries and sets no timeout; cancellation is the
// caller's context.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		logger:  logger,
	}
}

// multipartBody is a pre-encoded multipart/form-data payload. Its content
// type (with boundary) comes from the encoder, not from the transport.
type multipartBody struct {
	contentType string
	data        []byte
}

// errorBody is the JSON error shape the backend emits.
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs one request. body may be nil, a JSON-serializable value, or a
// *multipartBody. On a non-success status it extracts the "detail" field of
// the JSON error body, falling back to the HTTP status line, and returns an
// *Error. Transport failures come back as *NetworkError. Empty response
// bodies decode to nothing rather than failing.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *multipartBody:
		reader = bytes.NewReader(b.data)
		contentType = b.contentType
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		detail := resp.Status
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil && eb.Detail != "" {
			detail = eb.Detail
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// download performs a GET for a binary artifact and streams the body to w.
// Error normalization matches do.
func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		detail := resp.Status
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil && eb.Detail != "" {
			detail = eb.Detail
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return &NetworkError{Err: err}
	}
	return nil
}
