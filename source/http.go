package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/record"
)

// HTTPSource fetches the collection with a single GET to URL.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Metrics *metrics.Metrics
}

func NewHTTPSource(url string, m *metrics.Metrics) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		Client:  &http.Client{Timeout: consts.FetchTimeout},
		Metrics: m,
	}
}

func (s *HTTPSource) Records(ctx context.Context) ([]record.Record, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		observe(s.Metrics, "error")
		return nil, err
	}
	observe(s.Metrics, "ok")
	return records, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			URL:        s.URL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(body))),
		}
	}

	records, err := record.Decode(io.LimitReader(resp.Body, consts.MaxResponseBytes))
	if err != nil {
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode, Err: err}
	}
	if records == nil {
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("response is not a record array")}
	}
	return records, nil
}
