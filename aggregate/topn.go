package aggregate

import (
	"cmp"
	"slices"

	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/record"
)

// Entry is one ranked (label, value) pair.
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TopN pairs labels with values by index and returns the n highest values in
// descending order. Equal values keep their input order. n <= 0 means the
// default of five.
func TopN(labels []string, values []float64, n int) []Entry {
	if n <= 0 {
		n = consts.TopN
	}
	size := min(len(labels), len(values))
	entries := make([]Entry, size)
	for i := range size {
		entries[i] = Entry{Label: labels[i], Value: values[i]}
	}
	slices.SortStableFunc(entries, byValueDesc)
	return entries[:min(n, len(entries))]
}

// TopNRecords ranks the raw records by metric and projects the first n onto
// (label of field, metric). Unlike TopN it does not group first, so the same
// label may appear more than once. Records without the metric rank as 0.
func TopNRecords(records []record.Record, field record.Field, metric record.Metric, n int) []Entry {
	if !field.Known() {
		return nil
	}
	if n <= 0 {
		n = consts.TopN
	}
	entries := make([]Entry, len(records))
	for i, r := range records {
		label, _ := r.Label(field)
		entries[i] = Entry{Label: label, Value: r.Metric(metric).Value}
	}
	slices.SortStableFunc(entries, byValueDesc)
	return entries[:min(n, len(entries))]
}

func byValueDesc(a, b Entry) int {
	return cmp.Compare(b.Value, a.Value)
}

// Split unzips entries into parallel label and value slices.
func Split(entries []Entry) ([]string, []float64) {
	labels := make([]string, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
		values[i] = e.Value
	}
	return labels, values
}
