package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vizboard/vizboard/metrics"
	"github.com/vizboard/vizboard/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

var _ = Describe("CORS", func() {
	handler := middleware.CORS(middleware.DefaultCORSConfig())(ok)

	It("echoes the origin", func() {
		req := httptest.NewRequest(http.MethodGet, "/getorders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		Expect(rec.Body.String()).To(Equal("ok"))
	})

	It("answers preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/getorders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("GET"))
	})

	It("leaves same-origin requests alone", func() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getorders", nil))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("ignores origins that are not allowed", func() {
		cfg := middleware.DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://dashboard"}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://elsewhere")
		rec := httptest.NewRecorder()
		middleware.CORS(cfg)(ok).ServeHTTP(rec, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})

var _ = Describe("Metrics", func() {
	It("labels requests with the chi route pattern", func() {
		m := metrics.New()
		r := chi.NewRouter()
		r.Use(middleware.Metrics(m))
		r.Get("/charts/{kind}", ok)

		for _, path := range []string{"/charts/bar", "/charts/pie"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
		}

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`http_requests_total{method="GET",path="/charts/{kind}",status="200"} 2`))
	})
})
