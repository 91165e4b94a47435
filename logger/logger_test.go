package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vizboard/vizboard/logger"
)

var _ = Describe("Logger", func() {
	DescribeTable("ParseLevel",
		func(in string, expected slog.Level) {
			Expect(logger.ParseLevel(in)).To(Equal(expected))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("upper case", "WARN", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("unknown falls back to info", "verbose", slog.LevelInfo),
	)

	It("writes JSON when asked", func() {
		var buf bytes.Buffer
		logger.New(&buf, "info", "json").Info("loaded", "records", 3)

		var entry map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
		Expect(entry).To(HaveKeyWithValue("msg", "loaded"))
		Expect(entry).To(HaveKeyWithValue("records", BeNumerically("==", 3)))
	})

	It("drops records below the level", func() {
		var buf bytes.Buffer
		logger.New(&buf, "warn", "text").Info("quiet")
		Expect(buf.Len()).To(BeZero())
	})
})
