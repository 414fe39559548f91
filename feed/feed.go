// Package feed is the fetch collaborator in front of the two upstream
// documents: the Port Authority's ridepath.json departure feed, and
// the alerts document. It owns timeouts, short-lived response reuse,
// deduplication of concurrent refreshes, and persistence of the last
// good payload. The engines downstream only ever see a snapshot.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultRidePathURL = "https://www.panynj.gov/bin/portauthority/ridepath.json"
	DefaultAlertsURL   = "https://raw.githubusercontent.com/pathboard/alerts/main/alerts.json"

	DefaultTimeout     = 5 * time.Second
	DefaultMaxSize     = 1 << 20 // 1 MB
	DefaultReuseWindow = 30 * time.Second
)

// A thing capable of fetching a document.
type Source interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetches documents over HTTP.
type HTTPSource struct {
	Timeout time.Duration
	MaxSize int
}

func NewHTTPSource() *HTTPSource {
	return &HTTPSource{
		Timeout: DefaultTimeout,
		MaxSize: DefaultMaxSize,
	}
}

func (s *HTTPSource) Get(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{
		Timeout: s.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if s.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(s.MaxSize))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return body, nil
}
