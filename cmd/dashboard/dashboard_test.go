package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/source"
	"github.com/vizboard/vizboard/view"
)

const payload = `[
	{"region": "Asia", "topic": "oil", "intensity": 6, "likelihood": 3, "relevance": 2},
	{"region": "Asia", "topic": "gas", "intensity": 9, "likelihood": 2, "relevance": 4},
	{"region": "Europe", "topic": "oil", "intensity": 3, "likelihood": 4, "relevance": 1}
]`

var _ = Describe("Dashboard", func() {
	var (
		d        *dashboard
		handler  http.Handler
		failing  atomic.Bool
		upstream *httptest.Server
	)

	BeforeEach(func() {
		failing.Store(false)
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				http.Error(w, "down", http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(payload))
		}))
		DeferCleanup(upstream.Close)

		m := metrics.New()
		d = &dashboard{
			board:   view.NewBoard(),
			source:  source.NewShared(source.NewHTTPSource(upstream.URL+"/getorders", m), m),
			metrics: m,
			log:     slog.New(slog.NewTextHandler(GinkgoWriter, nil)),
		}
		handler = d.router()
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	Context("before records arrive", func() {
		It("shows loading on the page", func() {
			rec := do(http.MethodGet, "/")
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(rec.Body.String()).To(ContainSubstring("Loading..."))
		})

		It("reports degraded health", func() {
			Expect(do(http.MethodGet, "/healthz").Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("accepts a field selection", func() {
			rec := do(http.MethodGet, "/charts/bar?field=Topic")
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			v, _ := d.board.View(view.Bar)
			Expect(string(v.State().Field)).To(Equal("topic"))
			Expect(rec.Header().Get("Cache-Control")).To(Equal("no-store"))
		})
	})

	Context("once loaded", func() {
		BeforeEach(func() {
			d.load(context.Background())
		})

		It("renders all four charts on the page", func() {
			rec := do(http.MethodGet, "/")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("text/html"))
			body := rec.Body.String()
			Expect(body).To(ContainSubstring("Region vs Greatest Intensity"))
			Expect(body).To(ContainSubstring("Region vs Greatest Likelihood"))
			Expect(body).To(ContainSubstring("Region vs Max Relevance"))
		})

		It("ranks one view without touching the others", func() {
			rec := do(http.MethodGet, "/charts/pie?action=rank")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Cache-Control")).To(Equal("no-store"))
			Expect(rec.Header().Get("X-Robots-Tag")).To(Equal("noindex, nofollow"))
			Expect(rec.Body.String()).To(ContainSubstring("Region vs Top Five Max Relevance"))

			bar, _ := d.board.View(view.Bar)
			Expect(bar.State().Mode).To(Equal(view.ShowAll))
		})

		It("switches the field and back to all groups", func() {
			Expect(do(http.MethodGet, "/charts/line?action=rank").Code).To(Equal(http.StatusOK))
			rec := do(http.MethodGet, "/charts/line?field=topic&action=filter")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Topic vs Greatest Intensity"))
		})

		It("shows no data for an unknown field", func() {
			rec := do(http.MethodGet, "/charts/doughnut?field=colour")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("No data available"))
		})

		It("rejects unknown kinds and actions", func() {
			Expect(do(http.MethodGet, "/charts/scatter").Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodGet, "/charts/bar?action=explode").Code).To(Equal(http.StatusBadRequest))
		})

		It("serves chart options as JSON", func() {
			rec := do(http.MethodGet, "/api/charts")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Charts []struct {
					ID      string         `json:"id"`
					Status  string         `json:"status"`
					Title   string         `json:"title"`
					Options map[string]any `json:"options"`
				} `json:"charts"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Charts).To(HaveLen(4))
			for i, c := range body.Charts {
				Expect(c.ID).To(Equal(string(view.Kinds[i])))
				Expect(c.Status).To(Equal("ready"))
				Expect(c.Options).To(HaveKey("series"))
			}
		})

		It("reports healthy", func() {
			Expect(do(http.MethodGet, "/healthz").Code).To(Equal(http.StatusOK))
		})
	})

	Context("when the record source fails", func() {
		BeforeEach(func() {
			failing.Store(true)
			d.load(context.Background())
		})

		It("shows the error instead of charts", func() {
			rec := do(http.MethodGet, "/")
			Expect(rec.Code).To(Equal(http.StatusBadGateway))
			Expect(rec.Body.String()).To(ContainSubstring("Error: "))
		})

		It("reports the source as down", func() {
			Expect(do(http.MethodGet, "/healthz").Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("stays failed until an explicit reload", func() {
			failing.Store(false)
			Expect(do(http.MethodGet, "/").Code).To(Equal(http.StatusBadGateway))

			Expect(do(http.MethodPost, "/reload").Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/").Code).To(Equal(http.StatusOK))
		})

		It("keeps failing when the reload fails", func() {
			Expect(do(http.MethodPost, "/reload").Code).To(Equal(http.StatusBadGateway))
		})
	})
})
