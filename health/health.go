// Package health answers /healthz for the record source and the dashboard:
// whether the store is reachable and whether the chart views got their
// records.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vizboard/vizboard/db"
	"github.com/vizboard/vizboard/view"
)

// Status is ordered: up < degraded < down.
type Status string

const (
	StatusUp       Status = "up"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

func (s Status) rank() int {
	switch s {
	case StatusUp:
		return 0
	case StatusDegraded:
		return 1
	}
	return 2
}

func worst(a, b Status) Status {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Result is the outcome of one probe.
type Result struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	Took   string `json:"took,omitempty"`
}

// Probe inspects one part of the process.
type Probe func(ctx context.Context) Result

type Report struct {
	Status    Status            `json:"status"`
	Checks    map[string]Result `json:"checks"`
	CheckedAt time.Time         `json:"checkedAt"`
}

type namedProbe struct {
	name  string
	probe Probe
}

// Checker runs its probes concurrently. Probes are added while wiring the
// router, before it serves.
type Checker struct {
	timeout time.Duration
	probes  []namedProbe
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{timeout: timeout}
}

func (c *Checker) Add(name string, p Probe) *Checker {
	c.probes = append(c.probes, namedProbe{name: name, probe: p})
	return c
}

// Run probes everything and reports the worst status seen.
func (c *Checker) Run(ctx context.Context) Report {
	results := make([]Result, len(c.probes))
	var wg sync.WaitGroup
	for i, np := range c.probes {
		wg.Go(func() {
			start := time.Now()
			results[i] = np.probe(ctx)
			results[i].Took = time.Since(start).Round(time.Millisecond).String()
		})
	}
	wg.Wait()

	report := Report{
		Status:    StatusUp,
		Checks:    make(map[string]Result, len(results)),
		CheckedAt: time.Now().UTC(),
	}
	for i, r := range results {
		name := c.probes[i].name
		report.Checks[name] = r
		report.Status = worst(report.Status, r.Status)
		if r.Status == StatusDown {
			slog.Warn("Health check failed", "check", name, "detail", r.Detail)
		}
	}
	return report
}

// Handler serves the report as JSON with 503 unless everything is up.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
		defer cancel()
		report := c.Run(ctx)

		status := http.StatusOK
		if report.Status != StatusUp {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}

// Store is down when the document store cannot be queried and otherwise
// reports how many records it holds.
func Store(conn *sql.DB) Probe {
	return func(ctx context.Context) Result {
		n, err := db.CountRecords(ctx, conn)
		if err != nil {
			return Result{Status: StatusDown, Detail: err.Error()}
		}
		return Result{Status: StatusUp, Detail: fmt.Sprintf("%d records", n)}
	}
}

// Views is degraded while any view still waits for records and down once a
// view failed to load them.
func Views(board *view.Board) Probe {
	return func(context.Context) Result {
		res := Result{Status: StatusUp}
		for _, v := range board.Views() {
			switch s := v.State(); s.Status {
			case view.Error:
				return Result{Status: StatusDown, Detail: fmt.Sprintf("%s: %v", v.Kind(), s.Err)}
			case view.Loading:
				res = Result{Status: StatusDegraded, Detail: fmt.Sprintf("%s: loading", v.Kind())}
			}
		}
		return res
	}
}
