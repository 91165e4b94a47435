// Package source provides the record sources the dashboard loads from: the
// record service over HTTP, the sqlite store directly, and a process-wide
// memoizing wrapper shared by all views.
package source

import (
	"context"
	"fmt"

	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/record"
)

// Source returns the full record collection.
type Source interface {
	Records(ctx context.Context) ([]record.Record, error)
}

// FetchError is a transport, HTTP or decode failure reaching the record
// source. StatusCode is zero unless the service answered.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func observe(m *metrics.Metrics, result string) {
	if m != nil {
		m.SourceFetchesTotal.WithLabelValues(result).Inc()
	}
}
