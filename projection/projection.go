// Package projection turns aggregated labels and values into a chart-ready,
// renderer-agnostic Projection.
package projection

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/record"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNoChart signals that there is nothing to render.
	ErrNoChart           = errors.New("no chart data")
	ErrMismatchedLengths = errors.New("labels and values differ in length")
)

// Projection is what a renderer consumes: ordered labels, one value per
// label, a title and the per-item palette.
type Projection struct {
	Title            string    `json:"title"`
	Labels           []string  `json:"labels"`
	Values           []float64 `json:"values"`
	BackgroundColors []string  `json:"backgroundColors"`
	BorderColors     []string  `json:"borderColors"`
	BorderWidth      int       `json:"borderWidth"`
}

// Len returns the number of data points.
func (p *Projection) Len() int { return len(p.Labels) }

// Build assembles a Projection titled "<fieldLabel> vs <metricLabel>". The
// inputs are copied. Empty input returns ErrNoChart so callers skip rendering.
func Build(keys []string, values []float64, fieldLabel, metricLabel string) (*Projection, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d labels, %d values", ErrMismatchedLengths, len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil, ErrNoChart
	}
	return &Projection{
		Title:            Title(fieldLabel, metricLabel),
		Labels:           slices.Clone(keys),
		Values:           slices.Clone(values),
		BackgroundColors: Palette(consts.FillColors, len(keys)),
		BorderColors:     Palette(consts.BorderColors, len(keys)),
		BorderWidth:      consts.BorderWidth,
	}, nil
}

func Title(fieldLabel, metricLabel string) string {
	return fieldLabel + " vs " + metricLabel
}

// Palette returns n colors taken from colors by index, wrapping around.
func Palette(colors []string, n int) []string {
	if len(colors) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

// FieldLabel returns the display name of a field, e.g. "End Year". A Caser
// keeps state between calls, so each call gets its own.
func FieldLabel(f record.Field) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(string(f), "_", " "))
}
