// Package view holds the state of the four chart views and turns that state
// into chart projections.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vizboard/vizboard/aggregate"
	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/projection"
	"github.com/vizboard/vizboard/record"
)

// ErrNotReady is returned for a view whose records have not arrived yet.
var ErrNotReady = errors.New("view not ready")

// Source provides the records a view is loaded from.
type Source interface {
	Records(ctx context.Context) ([]record.Record, error)
}

// View is one chart adapter and its state. It is safe for concurrent use.
type View struct {
	chart Chart

	mu    sync.RWMutex
	state State
}

func New(k Kind) (*View, error) {
	c, ok := ChartFor(k)
	if !ok {
		return nil, fmt.Errorf("unknown chart kind %q", k)
	}
	return &View{chart: c, state: Initial()}, nil
}

func (v *View) Kind() Kind   { return v.chart.Kind }
func (v *View) Chart() Chart { return v.chart }

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Dispatch applies e and returns the resulting state.
func (v *View) Dispatch(e Event) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Reduce(v.state, e)
	return v.state
}

// Load fetches records from src and moves the view to Ready or Error. A
// view that is already ready is left alone.
func (v *View) Load(ctx context.Context, src Source) error {
	if v.Dispatch(Fetching{}).Status == Ready {
		return nil
	}
	records, err := src.Records(ctx)
	if err != nil {
		v.Dispatch(Failed{Err: err})
		return err
	}
	v.Dispatch(Loaded{Records: records})
	return nil
}

// Title is the title the view would render with in its current state.
func (v *View) Title() string {
	s := v.State()
	return projection.Title(projection.FieldLabel(s.Field), v.chart.MetricLabel(s.Mode))
}

// Warning reports why the current field yields no chart, if it does not.
func (v *View) Warning() error {
	s := v.State()
	if s.Status != Ready {
		return nil
	}
	return aggregate.Check(s.Records, s.Field)
}

// Projection builds the chart for the current state. It returns ErrNotReady
// while loading, the fetch error after a failure and projection.ErrNoChart
// when there is nothing to draw.
func (v *View) Projection() (*projection.Projection, error) {
	return Project(v.chart, v.State())
}

// Project builds the chart c shows in state s.
func Project(c Chart, s State) (*projection.Projection, error) {
	switch s.Status {
	case Loading:
		return nil, ErrNotReady
	case Error:
		return nil, s.Err
	}

	var keys []string
	var values []float64
	switch {
	case s.Mode == TopFive && c.RankRecords:
		keys, values = aggregate.Split(aggregate.TopNRecords(s.Records, s.Field, c.Metric, consts.TopN))
	case s.Mode == TopFive:
		result := aggregate.Aggregate(s.Records, s.Field, c.Metric)
		keys, values = aggregate.Split(aggregate.TopN(result.Keys, result.Values, consts.TopN))
	default:
		result := aggregate.Aggregate(s.Records, s.Field, c.Metric)
		keys, values = result.Keys, result.Values
	}
	return projection.Build(keys, values, projection.FieldLabel(s.Field), c.MetricLabel(s.Mode))
}

// Board owns one view per kind.
type Board struct {
	views map[Kind]*View
}

func NewBoard() *Board {
	b := &Board{views: make(map[Kind]*View, len(Kinds))}
	for _, k := range Kinds {
		v, _ := New(k)
		b.views[k] = v
	}
	return b
}

// View returns the view of kind k.
func (b *Board) View(k Kind) (*View, bool) {
	v, ok := b.views[k]
	return v, ok
}

// Views returns every view in page order.
func (b *Board) Views() []*View {
	out := make([]*View, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, b.views[k])
	}
	return out
}

// Load loads every view from src concurrently. Each view ends up Ready or
// Error on its own; the first error is returned.
func (b *Board) Load(ctx context.Context, src Source) error {
	var g errgroup.Group
	for _, v := range b.Views() {
		g.Go(func() error { return v.Load(ctx, src) })
	}
	return g.Wait()
}
