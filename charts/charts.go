// Package charts renders view projections with go-echarts.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/projection"
	"github.com/vizboard/vizboard/view"
)

// Chart is a go-echarts chart that can be placed on a page or exported.
type Chart interface {
	components.Charter
	JSON() map[string]any
	Render(w io.Writer) error
}

// Build renders p as the chart type of kind.
func Build(kind view.Kind, p *projection.Projection) (Chart, error) {
	if p == nil || p.Len() == 0 {
		return nil, projection.ErrNoChart
	}
	switch kind {
	case view.Bar:
		return buildBar(p), nil
	case view.Line:
		return buildLine(p), nil
	case view.Pie:
		return buildPie(p, "0%"), nil
	case view.Doughnut:
		return buildPie(p, consts.DoughnutInner), nil
	}
	return nil, fmt.Errorf("unknown chart kind %q", kind)
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:           consts.ChartWidth,
		Height:          consts.ChartHeight,
		BackgroundColor: consts.ChartBackgroundColor,
	})
}

func titleOpts(p *projection.Projection) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:      p.Title,
		TitleStyle: &opts.TextStyle{Color: consts.ChartTextColor},
	})
}

func itemStyle(p *projection.Projection, i int) *opts.ItemStyle {
	return &opts.ItemStyle{
		Color:       p.BackgroundColors[i],
		BorderColor: p.BorderColors[i],
		BorderWidth: float32(p.BorderWidth),
	}
}

func buildBar(p *projection.Projection) *charts.Bar {
	data := make([]opts.BarData, p.Len())
	for i, v := range p.Values {
		data[i] = opts.BarData{Name: p.Labels[i], Value: v, ItemStyle: itemStyle(p, i)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Color:  consts.ChartTextColor,
				Rotate: 30,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{
				Color: consts.ChartTextColor,
			},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "80",
			Bottom: "100",
		}),
	)
	bar.SetXAxis(p.Labels).AddSeries(p.Title, data)
	return bar
}

func buildLine(p *projection.Projection) *charts.Line {
	data := make([]opts.LineData, p.Len())
	for i, v := range p.Values {
		data[i] = opts.LineData{Name: p.Labels[i], Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Color:  consts.ChartTextColor,
				Rotate: 30,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{
				Color: consts.ChartTextColor,
			},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "80",
			Bottom: "100",
		}),
	)
	// A line has a single color, so it takes the first palette entry.
	line.SetXAxis(p.Labels).
		AddSeries(p.Title, data).
		SetSeriesOptions(
			charts.WithItemStyleOpts(*itemStyle(p, 0)),
			charts.WithLineStyleOpts(opts.LineStyle{Color: p.BorderColors[0], Width: float32(p.BorderWidth)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: p.BackgroundColors[0], Opacity: opts.Float(0.3)}),
		)
	return line
}

func buildPie(p *projection.Projection, inner string) *charts.Pie {
	data := make([]opts.PieData, p.Len())
	for i, v := range p.Values {
		data[i] = opts.PieData{Name: p.Labels[i], Value: v, ItemStyle: itemStyle(p, i)}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		titleOpts(p),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Right:     "10",
			Orient:    "vertical",
			TextStyle: &opts.TextStyle{Color: consts.ChartTextColor},
			Type:      "scroll",
		}),
	)
	pie.AddSeries(p.Title, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{inner, "75%"},
				Center: []string{"40%", "50%"},
			}),
		)
	return pie
}

// Status values reported for a view.
const (
	StatusReady    = "ready"
	StatusLoading  = "loading"
	StatusError    = "error"
	StatusNoData   = "no_data"
	MessageLoading = "Loading..."
	MessageNoData  = "No data available"
)

// Rendered is the outcome of rendering one view: either a chart or the
// message shown in its place.
type Rendered struct {
	Kind    view.Kind
	Status  string
	Title   string
	Message string
	Chart   Chart
}

// Render builds the chart v currently shows.
func Render(v *view.View) Rendered {
	r := Rendered{Kind: v.Kind(), Title: v.Title()}
	p, err := v.Projection()
	switch {
	case errors.Is(err, view.ErrNotReady):
		r.Status, r.Message = StatusLoading, MessageLoading
		return r
	case errors.Is(err, projection.ErrNoChart):
		r.Status, r.Message = StatusNoData, MessageNoData
		return r
	case err != nil:
		r.Status, r.Message = StatusError, "Error: "+err.Error()
		return r
	}
	chart, err := Build(v.Kind(), p)
	if err != nil {
		r.Status, r.Message = StatusError, "Error: "+err.Error()
		return r
	}
	r.Status, r.Title, r.Chart = StatusReady, p.Title, chart
	return r
}

// RenderAll renders every view in order.
func RenderAll(views []*view.View) []Rendered {
	out := make([]Rendered, len(views))
	for i, v := range views {
		out[i] = Render(v)
	}
	return out
}

// NewPage places every ready chart on one page.
func NewPage(rendered []Rendered) *components.Page {
	page := components.NewPage()
	page.PageTitle = consts.PageTitle
	for _, r := range rendered {
		if r.Chart != nil {
			page.AddCharts(r.Chart)
		}
	}
	return page
}
