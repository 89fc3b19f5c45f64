package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/logging"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000"

// HeaderSource supplies the headers attached to every request.
type HeaderSource interface {
	AuthHeaders() http.Header
}

type HTTPClient struct {
	baseURL string
	headers HeaderSource
	http    *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func NewHTTPClient(baseURL string, headers HeaderSource, opts ...Option) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &HTTPClient{
		baseURL: baseURL,
		headers: headers,
		http:    http.DefaultClient,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// send performs one request and returns the raw body of a 2xx response.
// in, when non-nil, is encoded as the JSON request body.
func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if c.headers != nil {
		for k, vs := range c.headers.AuthHeaders() {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}
	if req.Header.Get(common.ContentTypeHeader) == "" {
		req.Header.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage extracts the human-readable text of an error body. The API
// uses "error" or "message"; the JWT layer answers 401s with "msg".
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	switch {
	case body.Error != "":
		return body.Error
	case body.Message != "":
		return body.Message
	default:
		return body.Msg
	}
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

// decodeCollection accepts either a bare JSON array or an object holding the
// array under key. A missing or null collection decodes as empty.
func decodeCollection[T any](data []byte, key string) ([]T, error) {
	data = bytes.TrimSpace(data)
	out := []T{}

	if len(data) > 0 && data[0] == '[' {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var wrapped map[string]json.RawMessage
	if err := decode(data, &wrapped); err != nil {
		return nil, err
	}
	raw, ok := wrapped[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return out, nil
	}
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeItem accepts an object, or an object holding it under key. A key
// whose value is not an object is treated as an ordinary field.
func decodeItem[T any](data []byte, key string) (*T, error) {
	var wrapped map[string]json.RawMessage
	if err := decode(data, &wrapped); err != nil {
		return nil, err
	}

	raw := data
	if inner, ok := wrapped[key]; ok {
		if inner = bytes.TrimSpace(inner); len(inner) > 0 && inner[0] == '{' {
			raw = inner
		}
	}

	out := new(T)
	if err := decode(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func segment(s string) string {
	return url.PathEscape(s)
}
