package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered returns the value of a single-series counter or gauge by full name.
func gathered(reg *prometheus.Registry, name string) (float64, bool) {
	families, err := reg.Gather()
	if err != nil {
		return 0, false
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				sum += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				sum += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				sum += float64(m.GetHistogram().GetSampleCount())
			}
		}
		return sum, true
	}
	return 0, false
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "matchdb")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("store"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordIntegrityCheck()

			Convey("Then names carry namespace and subsystem", func() {
				v, ok := gathered(registry, "test_store_integrity_checks_total")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When a build is recorded", func() {
			m.RecordBuild(12.5, 1700000000, 380, 1, 1, 20)

			Convey("Then entity gauges are set by kind", func() {
				v, ok := gathered(registry, "matchdb_store_entities")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 402)
				last, _ := gathered(registry, "matchdb_build_last_unix")
				So(last, ShouldEqual, 1700000000)
			})
		})

		Convey("When soft failures are recorded", func() {
			m.RecordIngestSkipped(ReasonDecodeFailed)
			m.RecordIngestSkipped(ReasonDecodeFailed)
			m.RecordIngestSkipped(ReasonSeasonMalformed)

			Convey("Then they accumulate across reasons", func() {
				v, _ := gathered(registry, "matchdb_ingest_skipped_total")
				So(v, ShouldEqual, 3)
			})
		})

		Convey("When queries are recorded", func() {
			m.RecordQuery("team_matches", 0.2, false)
			m.RecordQuery("team_matches", 0.1, true)

			Convey("Then latency and not-found are tracked separately", func() {
				n, _ := gathered(registry, "matchdb_query_latency_milliseconds")
				So(n, ShouldEqual, 2)
				nf, _ := gathered(registry, "matchdb_query_not_found_total")
				So(nf, ShouldEqual, 1)
			})
		})

		Convey("When cache and HTTP metrics are recorded", func() {
			m.RecordCacheHit()
			m.RecordCacheMiss()
			m.UpdateCacheEntries(4)
			m.RecordHTTPRequest("seasons", "GET", "200", 1)
			m.RecordHTTPError("teams", "GET", "not_found", "medium", 1)
			m.UpdateSystem(1024, 8, 0.5)

			Convey("Then every series is exported", func() {
				for _, name := range []string{
					"matchdb_response_cache_hits_total",
					"matchdb_response_cache_misses_total",
					"matchdb_response_cache_entries",
					"matchdb_http_requests_total",
					"matchdb_errors_by_endpoint_total",
					"matchdb_system_goroutine_count",
				} {
					_, ok := gathered(registry, name)
					So(ok, ShouldBeTrue)
				}
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then package helpers should not panic", func() {
			So(func() {
				RecordBuild(1, 1, 1, 1, 1, 2)
				RecordIngestSkipped(ReasonEmptyList)
				RecordFileDecoded(0.3)
				RecordBuildFailure("no_data")
				RecordIntegrityCheck()
				RecordQuery("seasons", 0.01, false)
				RecordCacheHit()
				RecordCacheMiss()
				UpdateCacheEntries(1)
				RecordHTTPRequest("healthz", "GET", "200", 1)
				RecordHTTPError("healthz", "GET", "server_error", "high", 1)
				UpdateSystem(1, 1, 0)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
			So(Default(), ShouldNotBeNil)
		})
	})
}
