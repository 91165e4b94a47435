package aggregate

import (
	"errors"
	"fmt"

	"github.com/vizboard/vizboard/record"
)

// ErrEmptyData is matched by every EmptyDataWarning.
var ErrEmptyData = errors.New("empty data")

// EmptyDataWarning explains why an aggregation produced no groups. It is not
// a failure: aggregation still returns an empty result.
type EmptyDataWarning struct {
	Field  record.Field
	Reason string
}

func (w *EmptyDataWarning) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrEmptyData, w.Field, w.Reason)
}

func (w *EmptyDataWarning) Unwrap() error { return ErrEmptyData }

// Check reports an EmptyDataWarning when aggregating records by field would
// produce no groups, and nil otherwise.
func Check(records []record.Record, field record.Field) error {
	switch {
	case !field.Known():
		return &EmptyDataWarning{Field: field, Reason: "unknown field"}
	case len(records) == 0:
		return &EmptyDataWarning{Field: field, Reason: "no records"}
	}
	return nil
}
