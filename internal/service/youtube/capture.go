package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type captureKey struct{}

// CaptureTransport copies a response body into the buffer attached to the
// request context by withCapture. Requests without one pass through untouched.
type CaptureTransport struct {
	Base http.RoundTripper
}

func (t *CaptureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil || resp.Body == nil {
		return resp, err
	}

	if buf, ok := req.Context().Value(captureKey{}).(*bytes.Buffer); ok {
		resp.Body = teeBody{Reader: io.TeeReader(resp.Body, buf), Closer: resp.Body}
	}
	return resp, nil
}

// WrapClient returns a copy of client whose transport captures bodies.
func WrapClient(client *http.Client) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	wrapped := *client
	wrapped.Transport = &CaptureTransport{Base: client.Transport}
	return &wrapped
}

type teeBody struct {
	io.Reader
	io.Closer
}

func withCapture(ctx context.Context) (context.Context, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return context.WithValue(ctx, captureKey{}, buf), buf
}

// statisticKeys reports which statistics fields each video carried in a raw
// videos.list response. It returns nil when the body was not captured.
func statisticKeys(raw []byte) map[string]map[string]bool {
	if len(raw) == 0 {
		return nil
	}

	var body struct {
		Items []struct {
			ID         string                     `json:"id"`
			Statistics map[string]json.RawMessage `json:"statistics"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	keys := make(map[string]map[string]bool, len(body.Items))
	for _, item := range body.Items {
		present := make(map[string]bool, len(item.Statistics))
		for key := range item.Statistics {
			present[key] = true
		}
		keys[item.ID] = present
	}
	return keys
}
