package source

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/record"
)

// Shared memoizes the first successful result of src for the lifetime of the
// process. Concurrent callers share one in-flight fetch. Failures are not
// memoized, so a later call fetches again.
type Shared struct {
	src     Source
	metrics *metrics.Metrics
	group   singleflight.Group

	mu      sync.RWMutex
	records []record.Record
	loaded  bool
}

func NewShared(src Source, m *metrics.Metrics) *Shared {
	return &Shared{src: src, metrics: m}
}

// Records returns the memoized collection. Every caller receives the same
// slice, which must not be modified.
func (s *Shared) Records(ctx context.Context) ([]record.Record, error) {
	if records, ok := s.cached(); ok {
		observe(s.metrics, "cached")
		return records, nil
	}
	v, err, _ := s.group.Do("records", func() (any, error) {
		if records, ok := s.cached(); ok {
			return records, nil
		}
		records, err := s.src.Records(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.records, s.loaded = records, true
		s.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]record.Record), nil
}

// Loaded reports whether a successful fetch has been memoized.
func (s *Shared) Loaded() bool {
	_, ok := s.cached()
	return ok
}

func (s *Shared) cached() ([]record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.loaded
}
