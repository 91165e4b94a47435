// Package record defines the dataset row served by the record source and the
// category fields and metrics the dashboard groups and ranks by.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Field names a category field used to group records.
type Field string

const (
	Region  Field = "region"
	Topic   Field = "topic"
	EndYear Field = "end_year"
	Sector  Field = "sector"
	Source  Field = "source"
	Country Field = "country"
	Pestle  Field = "pestle"
)

// Fields lists the selectable category fields in menu order.
var Fields = []Field{Region, Topic, EndYear, Sector, Source, Country, Pestle}

// ParseField matches s case-insensitively against the known fields, so both
// "end_year" and the menu spelling "End_Year" resolve to EndYear. The returned
// Field is always the lowercased input; ok reports whether it is known.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	return f, f.Known()
}

// Known reports whether f is one of Fields.
func (f Field) Known() bool {
	switch f {
	case Region, Topic, EndYear, Sector, Source, Country, Pestle:
		return true
	}
	return false
}

// Metric names a numeric field aggregated per group.
type Metric string

const (
	Intensity  Metric = "intensity"
	Likelihood Metric = "likelihood"
	Relevance  Metric = "relevance"
)

var Metrics = []Metric{Intensity, Likelihood, Relevance}

func ParseMetric(s string) (Metric, bool) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case Intensity, Likelihood, Relevance:
		return m, true
	}
	return m, false
}

// Record is one row of the dataset. Records are decoded once and never
// modified; everything derived from them is a new value.
type Record struct {
	EndYear    Number `json:"end_year"`
	Intensity  Number `json:"intensity"`
	Sector     string `json:"sector"`
	Topic      string `json:"topic"`
	Insight    string `json:"insight,omitempty"`
	URL        string `json:"url,omitempty"`
	Region     string `json:"region"`
	StartYear  Number `json:"start_year"`
	Impact     Number `json:"impact"`
	Added      string `json:"added,omitempty"`
	Published  string `json:"published,omitempty"`
	Country    string `json:"country"`
	Relevance  Number `json:"relevance"`
	Pestle     string `json:"pestle"`
	Source     string `json:"source"`
	Title      string `json:"title,omitempty"`
	Likelihood Number `json:"likelihood"`
}

// Label returns the grouping label of r under field f. ok is false when f is
// not a known field.
func (r Record) Label(f Field) (label string, ok bool) {
	switch f {
	case Region:
		return r.Region, true
	case Topic:
		return r.Topic, true
	case EndYear:
		return r.EndYear.String(), true
	case Sector:
		return r.Sector, true
	case Source:
		return r.Source, true
	case Country:
		return r.Country, true
	case Pestle:
		return r.Pestle, true
	}
	return "", false
}

// Metric returns the value of m on r. Unknown metrics are absent.
func (r Record) Metric(m Metric) Number {
	switch m {
	case Intensity:
		return r.Intensity
	case Likelihood:
		return r.Likelihood
	case Relevance:
		return r.Relevance
	}
	return Number{}
}

// Decode reads a JSON array of records.
func Decode(rd io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(rd).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}

// DecodeDocuments decodes records from individually stored JSON documents.
func DecodeDocuments(docs []json.RawMessage) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	for i, doc := range docs {
		var r Record
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}
