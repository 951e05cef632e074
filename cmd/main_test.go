package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/matchdb/internal/app"
	"github.com/okian/matchdb/internal/config"
	"github.com/okian/matchdb/internal/testcorpus"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("MATCHDB_ADDR", ":8080")
			t.Setenv("MATCHDB_DEFAULT_PER_PAGE", "25")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultPerPage, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("MATCHDB_ADDR", "")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a service built from a generated corpus", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		corpus, exp := testcorpus.Generate(testcorpus.DefaultConfig())
		svc := service.New(
			service.WithLogger(logger.Discard()),
			service.WithCorpus(corpus),
			service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		static := t.TempDir()
		convey.So(os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>matchdb</h1>"), 0o600), convey.ShouldBeNil)

		cfg := config.New()
		cfg.StaticDir = static
		ts := httptest.NewServer(newHandler(ctx, cfg, svc, logger.Discard()))
		defer ts.Close()

		convey.Convey("Then the API serves the whole store", func() {
			resp, err := http.Get(ts.URL + "/api/all_matches?per_page=250")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var body struct {
				Total int               `json:"total"`
				List  []json.RawMessage `json:"list"`
			}
			convey.So(json.NewDecoder(resp.Body).Decode(&body), convey.ShouldBeNil)
			convey.So(body.Total, convey.ShouldEqual, exp.Matches)
		})

		convey.Convey("Then docs and the static site are mounted", func() {
			for _, path := range []string{"/openapi.yaml", "/api-docs", "/healthz", "/stats", "/"} {
				resp, err := http.Get(ts.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then responses carry a request id", func() {
			resp, err := http.Get(ts.URL + "/api/seasons")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.Header.Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
