package view

import (
	"strings"

	"github.com/vizboard/vizboard/record"
)

// Kind identifies one of the four chart views.
type Kind string

const (
	Bar      Kind = "bar"
	Line     Kind = "line"
	Pie      Kind = "pie"
	Doughnut Kind = "doughnut"
)

// Kinds lists the views in page order.
var Kinds = []Kind{Bar, Line, Pie, Doughnut}

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := charts[k]
	return k, ok
}

// Chart is the per-view configuration: which metric it reduces and how the
// metric is labelled in each mode.
type Chart struct {
	Kind     Kind
	Metric   record.Metric
	AllLabel string
	TopLabel string
	// RankRecords ranks raw records instead of grouped maxima in TopFive mode.
	RankRecords bool
}

var charts = map[Kind]Chart{
	Bar: {
		Kind:     Bar,
		Metric:   record.Intensity,
		AllLabel: "Greatest Intensity",
		TopLabel: "Top Five Intensities",
	},
	Line: {
		Kind:     Line,
		Metric:   record.Intensity,
		AllLabel: "Greatest Intensity",
		TopLabel: "Top Five Intensities",
	},
	Doughnut: {
		Kind:     Doughnut,
		Metric:   record.Likelihood,
		AllLabel: "Greatest Likelihood",
		TopLabel: "Top Five Likelihoods",
	},
	Pie: {
		Kind:        Pie,
		Metric:      record.Relevance,
		AllLabel:    "Max Relevance",
		TopLabel:    "Top Five Max Relevance",
		RankRecords: true,
	},
}

// ChartFor returns the configuration of k.
func ChartFor(k Kind) (Chart, bool) {
	c, ok := charts[k]
	return c, ok
}

// MetricLabel returns the metric label shown in mode m.
func (c Chart) MetricLabel(m Mode) string {
	if m == TopFive {
		return c.TopLabel
	}
	return c.AllLabel
}
