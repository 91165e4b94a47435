package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vizboard/vizboard/projection"
)

const dataset = `[
	{"region": "Asia", "end_year": 2020, "intensity": 6, "likelihood": 3, "relevance": 2},
	{"region": "Asia", "end_year": 2018, "intensity": 9, "likelihood": "", "relevance": 4},
	{"region": "Europe", "end_year": "", "intensity": 3, "likelihood": 4, "relevance": 4},
	{"region": "Africa", "end_year": 2019, "intensity": 1, "likelihood": 1, "relevance": 1}
]`

var _ = Describe("vizctl", func() {
	var (
		dir    string
		dbPath string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		dbPath = filepath.Join(dir, "vizboard.db")
	})

	execute := func(args ...string) (string, error) {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	importDataset := func() {
		path := filepath.Join(dir, "jsondata.json")
		Expect(os.WriteFile(path, []byte(dataset), 0600)).To(Succeed())
		out, err := execute("import", path, "--db", dbPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Imported 4 records"))
	}

	It("fails to import a missing file", func() {
		_, err := execute("import", filepath.Join(dir, "missing.json"), "--db", dbPath)
		Expect(err).To(HaveOccurred())
	})

	Describe("report", func() {
		BeforeEach(importDataset)

		It("prints grouped maxima", func() {
			out, err := execute("report", "--db", dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Region vs Greatest Intensity:"))
			Expect(out).To(ContainSubstring("    9.00 | Asia"))
			Expect(out).To(ContainSubstring("    3.00 | Europe"))
		})

		It("orders years ascending with missing years first", func() {
			out, err := execute("report", "--db", dbPath, "--field", "End_Year", "--json")
			Expect(err).NotTo(HaveOccurred())
			var p projection.Projection
			Expect(json.Unmarshal([]byte(out), &p)).To(Succeed())
			Expect(p.Title).To(Equal("End Year vs Greatest Intensity"))
			Expect(p.Labels).To(Equal([]string{"", "2018", "2019", "2020"}))
			Expect(p.Values).To(Equal([]float64{3, 9, 1, 6}))
		})

		It("ranks raw records for the pie chart", func() {
			out, err := execute("report", "--db", dbPath, "--kind", "pie", "--top", "--json")
			Expect(err).NotTo(HaveOccurred())
			var p projection.Projection
			Expect(json.Unmarshal([]byte(out), &p)).To(Succeed())
			Expect(p.Title).To(Equal("Region vs Top Five Max Relevance"))
			Expect(p.Labels).To(Equal([]string{"Asia", "Europe", "Asia", "Africa"}))
		})

		It("reports no data for unknown fields", func() {
			out, err := execute("report", "--db", dbPath, "--field", "colour")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("not a known field"))
			Expect(out).To(ContainSubstring("No data available"))
		})

		It("rejects unknown chart kinds", func() {
			_, err := execute("report", "--db", dbPath, "--kind", "radar")
			Expect(err).To(MatchError(ContainSubstring("unknown chart kind")))
		})
	})

	Describe("record source URL", func() {
		var (
			server *httptest.Server
			hits   atomic.Int32
		)

		BeforeEach(func() {
			hits.Store(0)
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				_, _ = w.Write([]byte(dataset))
			}))
			DeferCleanup(server.Close)
		})

		It("reads the records", func() {
			out, err := execute("report", "--url", server.URL+"/getorders", "--kind", "doughnut", "--db", dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Region vs Greatest Likelihood:"))
			Expect(out).To(ContainSubstring("    3.00 | Asia"))
		})

		It("fetches once for every view of a run", func() {
			_, err := execute("report", "--url", server.URL+"/getorders", "--kind", "bar", "--db", dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(hits.Load()).To(Equal(int32(1)))

			_, err = execute("render", "--url", server.URL+"/getorders", "--db", dbPath, "--out", filepath.Join(dir, "out"))
			Expect(err).NotTo(HaveOccurred())
			Expect(hits.Load()).To(Equal(int32(2)))
		})
	})

	It("renders the page and chart JSON", func() {
		importDataset()
		outDir := filepath.Join(dir, "out")
		out, err := execute("render", "--db", dbPath, "--out", outDir, "--json")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("charts.html"))
		Expect(filepath.Join(outDir, "charts.html")).To(BeARegularFile())
		Expect(filepath.Join(outDir, "charts.json")).To(BeARegularFile())
	})
})
