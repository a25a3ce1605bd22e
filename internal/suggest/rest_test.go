package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

func TestHTTPRestClientPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok/_search":
			w.Header().Set("Content-Type", "application/json; charset=UTF-8")
			_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
		case "/vendor/_search":
			w.Header().Set("Content-Type", "application/vnd.elasticsearch+json; compatible-with=8")
			_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
		case "/html/_search":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`{}`))
		case "/broken/_search":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"hits":`))
		case "/text/_search":
			_, _ = w.Write([]byte(`not json`))
		case "/slow/_search":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, "no such index", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	base := func(path string) *url.URL {
		u, err := url.Parse(srv.URL + path)
		require.NoError(t, err)
		return u
	}
	c := NewHTTPRestClient()

	raw, err := c.Post(context.Background(), base("/ok"), SearchPath, map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hits":{"hits":[]}}`, string(raw))

	_, err = c.Post(context.Background(), base("/missing"), SearchPath, nil)
	assert.ErrorIs(t, err, types.ErrBackendStatus)
	assert.Contains(t, err.Error(), "404")

	raw, err = c.Post(context.Background(), base("/vendor"), SearchPath, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hits":{"hits":[]}}`, string(raw))

	for _, path := range []string{"/text", "/html", "/broken"} {
		_, err = c.Post(context.Background(), base(path), SearchPath, nil)
		assert.ErrorIs(t, err, types.ErrBackendStatus, path)
	}

	_, err = c.Post(context.Background(), nil, SearchPath, nil)
	assert.ErrorIs(t, err, types.ErrInvalidConnection)

	_, err = NewHTTPRestClient(WithTimeout(20*time.Millisecond)).Post(context.Background(), base("/slow"), SearchPath, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Post(ctx, base("/ok"), SearchPath, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPRestClientOptions(t *testing.T) {
	hc := &http.Client{}
	c := NewHTTPRestClient(WithHTTPClient(hc), WithTimeout(time.Second), WithUserAgent(""))
	assert.Same(t, hc, c.client)
	assert.Equal(t, time.Second, hc.Timeout)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
}

func TestJSONMediaType(t *testing.T) {
	tests := map[string]bool{
		"":                                true,
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"application/problem+json":        true,
		"text/plain; charset=utf-8":       false,
		"application/x-ndjson":            false,
		"not a media type":                false,
	}
	for header, want := range tests {
		assert.Equal(t, want, jsonMediaType(header), header)
	}
}
