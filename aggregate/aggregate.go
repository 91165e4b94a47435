// Package aggregate groups records by a category field and reduces each group
// to the maximum of a metric. It is shared by every chart view; views differ
// only in the metric they pass in.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/vizboard/vizboard/record"
)

// Result holds the ordered group labels and the aggregated value of each.
// Keys and Values always have the same length.
type Result struct {
	Keys   []string
	Values []float64
}

// Len returns the number of groups.
func (r Result) Len() int { return len(r.Keys) }

// Keys returns the distinct labels of field across records. Years are sorted
// ascending with the missing-year group first; every other field keeps the
// order in which labels were first seen. Unknown fields yield no keys.
func Keys(records []record.Record, field record.Field) []string {
	if !field.Known() {
		return nil
	}
	var keys []string
	seen := make(map[string]struct{})
	years := make(map[string]record.Number)
	for _, r := range records {
		label, _ := r.Label(field)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		keys = append(keys, label)
		if field == record.EndYear {
			years[label] = r.EndYear
		}
	}
	if field == record.EndYear {
		slices.SortStableFunc(keys, func(a, b string) int {
			return compareYears(years[a], years[b])
		})
	}
	return keys
}

func compareYears(a, b record.Number) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	return cmp.Compare(a.Value, b.Value)
}

// Groups partitions records by their label under field. Each record lands in
// exactly one group. Unknown fields yield no groups.
func Groups(records []record.Record, field record.Field) map[string][]record.Record {
	if !field.Known() {
		return nil
	}
	groups := make(map[string][]record.Record)
	for _, r := range records {
		label, _ := r.Label(field)
		groups[label] = append(groups[label], r)
	}
	return groups
}

// Aggregate computes, for every key of field, the greatest value of metric
// among the records of that group. Records without the metric are skipped; a
// group where no record carries it aggregates to 0.
func Aggregate(records []record.Record, field record.Field, metric record.Metric) Result {
	keys := Keys(records, field)
	if len(keys) == 0 {
		return Result{}
	}

	greatest := make(map[string]float64, len(keys))
	for _, r := range records {
		v := r.Metric(metric)
		if !v.Valid {
			continue
		}
		label, _ := r.Label(field)
		if cur, ok := greatest[label]; !ok || v.Value > cur {
			greatest[label] = v.Value
		}
	}

	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = greatest[k]
	}
	return Result{Keys: keys, Values: values}
}
