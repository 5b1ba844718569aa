package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport fetches a remote resource in full.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: "go-disaster-maps/1.0",
	}
}

func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading resp.Body: %w", err)
	}

	return body, nil
}

// Close drops idle keep-alive connections.
func (t *HTTPTransport) Close() {
	t.client.CloseIdleConnections()
}
