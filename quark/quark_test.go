package quark

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const apiPrefix = "/1/clouddrive"

// rewriteTransport redirects every request to the test server so the
// hard-coded production hosts never leave the process.
type rewriteTransport struct {
	target *url.URL
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	opts = append([]Option{WithTransport(&rewriteTransport{target: target})}, opts...)
	return New("uid=test;kps=abc", opts...)
}

func apiPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, apiPrefix)
}

func writeEnvelope(w http.ResponseWriter, data any, metadata any) {
	resp := map[string]any{"status": 200, "code": 0, "message": "ok"}
	if data != nil {
		resp["data"] = data
	}
	if metadata != nil {
		resp["metadata"] = metadata
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
