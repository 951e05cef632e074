package api

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchdb/pkg/metrics"
)

func TestResponseCache(t *testing.T) {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))

	Convey("Given a bounded cache", t, func() {
		c := newResponseCache(2, m)

		Convey("Stored bodies are returned and the oldest is evicted", func() {
			c.add("a", []byte("1"))
			c.add("b", []byte("2"))
			c.add("c", []byte("3"))

			_, ok := c.get("a")
			So(ok, ShouldBeFalse)
			body, ok := c.get("c")
			So(ok, ShouldBeTrue)
			So(string(body), ShouldEqual, "3")
			So(c.len(), ShouldEqual, 2)
		})
	})

	Convey("Given a zero-sized cache", t, func() {
		c := newResponseCache(0, m)
		c.add("a", []byte("1"))
		_, ok := c.get("a")
		So(ok, ShouldBeFalse)
		So(c.len(), ShouldEqual, 0)
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Status codes map to error types and severities", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorSeverity(503), ShouldEqual, "high")
		So(getErrorSeverity(404), ShouldEqual, "medium")
		So(getErrorSeverity(200), ShouldEqual, "low")
	})
}
