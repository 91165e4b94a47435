package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vizboard/vizboard/charts"
	"github.com/vizboard/vizboard/record"
	"github.com/vizboard/vizboard/view"
)

func (d *dashboard) pageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rendered := d.render(d.board.Views()...)

		ready := 0
		for _, rv := range rendered {
			if rv.Chart != nil {
				ready++
			}
		}
		if ready == 0 {
			var lines []string
			for _, rv := range rendered {
				lines = append(lines, rv.Title+": "+rv.Message)
			}
			http.Error(w, strings.Join(lines, "\n"), statusCode(rendered[0]))
			return
		}

		w.Header().Set("Content-Type", "text/html")
		_ = charts.NewPage(rendered).Render(w)
	}
}

// chartHandler applies the field and action query parameters to one view and
// renders it. This GET stands in for the chart's field menu and buttons, so it
// changes the view every client sees; responses are marked no-store and
// robots are asked not to follow chart links.
func (d *dashboard) chartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := view.ParseKind(chi.URLParam(r, "kind"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		v, _ := d.board.View(kind)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Robots-Tag", "noindex, nofollow")

		q := r.URL.Query()
		var event view.Event
		switch action := q.Get("action"); action {
		case "":
		case "filter":
			event = view.Filter{}
		case "rank":
			event = view.Rank{}
		default:
			http.Error(w, "unknown action "+action, http.StatusBadRequest)
			return
		}

		if q.Has("field") {
			field, known := record.ParseField(q.Get("field"))
			if !known {
				d.log.Warn("Unknown field selected", "kind", kind, "field", field)
			}
			v.Dispatch(view.SelectField{Field: field})
		}
		if event != nil {
			v.Dispatch(event)
		}

		rv := d.render(v)[0]
		if rv.Chart == nil {
			http.Error(w, rv.Message, statusCode(rv))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_ = rv.Chart.Render(w)
	}
}

func (d *dashboard) apiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := charts.Entries(d.render(d.board.Views()...))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"charts": entries})
	}
}

// reloadHandler retries loading for views whose last attempt failed.
func (d *dashboard) reloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.board.Load(r.Context(), d.source); err != nil {
			d.log.Error("Error reloading records", "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// render renders views, logging empty-data warnings and counting outcomes.
func (d *dashboard) render(views ...*view.View) []charts.Rendered {
	rendered := make([]charts.Rendered, len(views))
	for i, v := range views {
		rendered[i] = charts.Render(v)
		if rendered[i].Status == charts.StatusNoData {
			if err := v.Warning(); err != nil {
				d.log.Warn("No chart data", "kind", v.Kind(), "reason", err)
			}
		}
		d.metrics.ChartRendersTotal.WithLabelValues(string(v.Kind()), rendered[i].Status).Inc()
	}
	return rendered
}

func statusCode(rv charts.Rendered) int {
	switch rv.Status {
	case charts.StatusLoading:
		return http.StatusServiceUnavailable
	case charts.StatusError:
		return http.StatusBadGateway
	case charts.StatusNoData:
		return http.StatusNotFound
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
