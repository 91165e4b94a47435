package projection_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vizboard/vizboard/aggregate"
	"github.com/vizboard/vizboard/consts"
	"github.com/vizboard/vizboard/projection"
	"github.com/vizboard/vizboard/record"
)

var _ = Describe("Build", func() {
	It("titles the projection and copies labels and values", func() {
		p, err := projection.Build([]string{"Asia", "EU"}, []float64{9, 3}, "Region", "Greatest Intensity")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Title).To(Equal("Region vs Greatest Intensity"))
		Expect(p.Labels).To(Equal([]string{"Asia", "EU"}))
		Expect(p.Values).To(Equal([]float64{9, 3}))
		Expect(p.BorderWidth).To(Equal(1))
		Expect(p.Len()).To(Equal(2))
	})

	It("does not alias the caller's slices", func() {
		keys := []string{"Asia"}
		values := []float64{1}
		p, err := projection.Build(keys, values, "Region", "Max Relevance")
		Expect(err).NotTo(HaveOccurred())
		keys[0] = "changed"
		values[0] = 42
		Expect(p.Labels).To(Equal([]string{"Asia"}))
		Expect(p.Values).To(Equal([]float64{1}))
	})

	It("cycles through the six palette colors", func() {
		keys := make([]string, 8)
		values := make([]float64, 8)
		for i := range keys {
			keys[i] = string(rune('a' + i))
		}
		p, err := projection.Build(keys, values, "Topic", "Greatest Likelihood")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.BackgroundColors).To(HaveLen(8))
		Expect(p.BackgroundColors[6]).To(Equal(consts.FillColors[0]))
		Expect(p.BackgroundColors[7]).To(Equal(consts.FillColors[1]))
		Expect(p.BorderColors[5]).To(Equal(consts.BorderColors[5]))
		Expect(p.BorderColors[6]).To(Equal(consts.BorderColors[0]))
	})

	It("is deterministic", func() {
		a, err := projection.Build([]string{"x", "y"}, []float64{1, 2}, "Sector", "Greatest Intensity")
		Expect(err).NotTo(HaveOccurred())
		b, err := projection.Build([]string{"x", "y"}, []float64{1, 2}, "Sector", "Greatest Intensity")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("signals no chart for empty data", func() {
		result := aggregate.Aggregate(nil, record.Region, record.Intensity)
		p, err := projection.Build(result.Keys, result.Values, "Region", "Greatest Intensity")
		Expect(p).To(BeNil())
		Expect(errors.Is(err, projection.ErrNoChart)).To(BeTrue())
	})

	It("rejects mismatched inputs", func() {
		_, err := projection.Build([]string{"a", "b"}, []float64{1}, "Region", "Greatest Intensity")
		Expect(err).To(MatchError(projection.ErrMismatchedLengths))
	})
})

var _ = Describe("helpers", func() {
	DescribeTable("FieldLabel",
		func(f record.Field, expected string) {
			Expect(projection.FieldLabel(f)).To(Equal(expected))
		},
		Entry("single word", record.Region, "Region"),
		Entry("underscored", record.EndYear, "End Year"),
		Entry("pestle", record.Pestle, "Pestle"),
	)

	It("labels fields from many goroutines at once", func() {
		expected := map[record.Field]string{}
		for _, f := range record.Fields {
			expected[f] = projection.FieldLabel(f)
		}

		var wg sync.WaitGroup
		labels := make([][]string, 16)
		for i := range labels {
			wg.Go(func() {
				for range 50 {
					for _, f := range record.Fields {
						labels[i] = append(labels[i], projection.FieldLabel(f))
					}
				}
			})
		}
		wg.Wait()

		for _, got := range labels {
			for j, label := range got {
				Expect(label).To(Equal(expected[record.Fields[j%len(record.Fields)]]))
			}
		}
	})

	It("returns an empty palette without colors", func() {
		Expect(projection.Palette(nil, 3)).To(BeNil())
	})
})
