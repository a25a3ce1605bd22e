package suggest

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

	"github.com/elnormous/contenttype"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// RestClient posts a JSON body to path below baseURL and returns the JSON
// response. Retry and backoff are the client's concern.
type RestClient interface {
	Post(ctx context.Context, baseURL *url.URL, path string, body any) (json.RawMessage, error)
}

// Default settings of HTTPRestClient.
const (
	DefaultHTTPTimeout = 10 * time.Second
	DefaultUserAgent   = "formkit"
)

// maxResponseBytes caps the response size read from a search backend.
const maxResponseBytes = 16 << 20

// HTTPRestClient is a RestClient over net/http.
type HTTPRestClient struct {
	client    *http.Client
	userAgent string
}

// RestOption customizes an HTTPRestClient.
type RestOption func(*HTTPRestClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) RestOption {
	return func(c *HTTPRestClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) RestOption {
	return func(c *HTTPRestClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) RestOption {
	return func(c *HTTPRestClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPRestClient returns an HTTPRestClient.
func NewHTTPRestClient(opts ...RestOption) *HTTPRestClient {
	c := &HTTPRestClient{
		client:    &http.Client{Timeout: DefaultHTTPTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post implements RestClient. A non-2xx status yields an error wrapping
// ErrBackendStatus; so does a response declared or found not to be JSON.
func (c *HTTPRestClient) Post(ctx context.Context, baseURL *url.URL, path string, body any) (json.RawMessage, error) {
	if baseURL == nil {
		return nil, fmt.Errorf("%w: no base address", types.ErrInvalidConnection)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	target := baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", target.Redacted(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response of %s: %w", target.Redacted(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: POST %s: %s", types.ErrBackendStatus, target.Redacted(), resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !jsonMediaType(ct) {
		return nil, fmt.Errorf("%w: POST %s: unexpected content type %q", types.ErrBackendStatus, target.Redacted(), ct)
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: POST %s: response is not JSON", types.ErrBackendStatus, target.Redacted())
	}
	return json.RawMessage(respBody), nil
}

// jsonMediaType reports whether a Content-Type header declares JSON, either
// application/json or a structured "+json" type. An absent header passes.
func jsonMediaType(header string) bool {
	if header == "" {
		return true
	}
	mt := contenttype.NewMediaType(header)
	return mt.Type == "application" && (mt.Subtype == "json" || strings.HasSuffix(mt.Subtype, "+json"))
}
