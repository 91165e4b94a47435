package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vizboard/vizboard/db"
	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/record"
)

// StoreSource reads records straight from the sqlite document store.
type StoreSource struct {
	DB      *sql.DB
	Metrics *metrics.Metrics
}

func (s *StoreSource) Records(ctx context.Context) ([]record.Record, error) {
	docs, err := db.AllRecords(ctx, s.DB)
	if err != nil {
		observe(s.Metrics, "error")
		return nil, fmt.Errorf("reading store: %w", err)
	}
	records, err := record.DecodeDocuments(docs)
	if err != nil {
		observe(s.Metrics, "error")
		return nil, err
	}
	observe(s.Metrics, "ok")
	return records, nil
}
