package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

const userAgent = "airtime-topup/1.0"

var _ HTTPClient = (*httpClient)(nil)

type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
}

type httpClient struct {
	client *http.Client
}

// NewHTTPClient returns a client bound to the given timeout. A zero timeout
// leaves the request deadline to the caller's context.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, url, nil, headers)
}

func (c *httpClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, body, headers)
}

// send applies the default headers first so callers can override them.
func (c *httpClient) send(ctx context.Context, method, url string, body io.Reader,
	headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.client.Do(req)
}
