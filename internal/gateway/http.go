package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"plan2read/internal/api"
)

const maxResponseBytes = 8 << 20

// HTTPTransport talks to the backend's /api endpoint. Read actions go out
// as GET queries, writes as POSTed JSON envelopes.
type HTTPTransport struct {
	URL    string
	Client *http.Client
}

// NewHTTPTransport builds a transport; timeout 0 leaves requests unbounded.
func NewHTTPTransport(endpoint string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		URL:    endpoint,
		Client: &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Call(ctx context.Context, req api.Request) (api.Response, error) {
	hreq, err := t.newRequest(ctx, req)
	if err != nil {
		return api.Response{}, err
	}

	res, err := t.Client.Do(hreq)
	if err != nil {
		return api.Response{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		return api.Response{}, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var resp api.Response
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(&resp); err != nil {
		return api.Response{}, fmt.Errorf("malformed response: %w", err)
	}
	return resp, nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, req api.Request) (*http.Request, error) {
	if api.IsRead(req.Action) {
		u, err := url.Parse(t.URL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		for k, v := range req.Values() {
			q[k] = v
		}
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	return hreq, nil
}
