package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Response carries the status and raw body of a settled request.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// RequestError is returned for any failed request. For non-2xx responses it
// carries the status and body the server sent; for transport failures Status
// is zero and Err holds the underlying cause.
type RequestError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Decorator mutates an outgoing request's query parameters before dispatch.
// The session store installs one to carry the admin credentials.
type Decorator func(path string, params url.Values)

// Client is the transport to the remote school API. All methods suspend at
// the network boundary and never retain a reference to the request after
// dispatch, so replacing decorators mid-flight never mutates a request
// already on the wire.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *zap.Logger

	mu         sync.Mutex
	decorators []Decorator
}

// New builds a client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:       base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// SetDecorators atomically replaces the decorator chain. Requests dispatched
// after this call use the new chain; in-flight requests keep what they
// captured.
func (c *Client) SetDecorators(ds ...Decorator) {
	c.mu.Lock()
	c.decorators = ds
	c.mu.Unlock()
}

// Get issues a GET request. params may be nil.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body interface{}) (*Response, error) {
	if params == nil {
		params = url.Values{}
	}
	// Decorators capture their effect now; later chain replacements do not
	// touch this request.
	c.mu.Lock()
	decorators := make([]Decorator, len(c.decorators))
	copy(decorators, c.decorators)
	c.mu.Unlock()
	for _, decorate := range decorators {
		decorate(path, params)
	}

	target := *c.base
	target.Path = strings.TrimRight(target.Path, "/") + path
	target.RawQuery = params.Encode()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(method, path, 0)
		c.logger.Warn("http_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(method, path, 0)
		return nil, &RequestError{Err: fmt.Errorf("read response body: %w", err)}
	}

	observeRequest(method, path, resp.StatusCode)
	c.logger.Info("http_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Body: raw}
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}
