package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vizboard/vizboard/charts"
	"github.com/vizboard/vizboard/metrics"
)

var _ = Describe("Metrics", func() {
	It("can be created more than once", func() {
		Expect(func() {
			metrics.New()
			metrics.New()
		}).NotTo(Panic())
	})

	It("describes the render statuses the dashboard records", func() {
		m := metrics.New()
		for _, status := range []string{charts.StatusReady, charts.StatusLoading, charts.StatusError, charts.StatusNoData} {
			m.ChartRendersTotal.WithLabelValues("bar", status).Inc()
		}
		expected := `
# HELP chart_renders_total Chart renders by kind and status (ready, loading, error, no_data).
# TYPE chart_renders_total counter
chart_renders_total{kind="bar",status="error"} 1
chart_renders_total{kind="bar",status="loading"} 1
chart_renders_total{kind="bar",status="no_data"} 1
chart_renders_total{kind="bar",status="ready"} 1
`
		Expect(testutil.CollectAndCompare(m.ChartRendersTotal, strings.NewReader(expected))).To(Succeed())
	})

	It("exposes collectors on its handler", func() {
		m := metrics.New()
		m.SourceFetchesTotal.WithLabelValues("ok").Inc()
		m.StoredRecords.Set(42)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`source_fetches_total{result="ok"} 1`))
		Expect(string(body)).To(ContainSubstring("stored_records 42"))
	})
})
