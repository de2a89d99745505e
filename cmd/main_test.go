package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	app "github.com/okian/pitchgate/internal/app"
	"github.com/okian/pitchgate/internal/config"
	"github.com/okian/pitchgate/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init(logger.WithWriter(io.Discard))
	os.Exit(m.Run())
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("PITCHGATE_ADDR", ":8080")
			t.Setenv("PITCHGATE_MIN_SCORE", "60")
			t.Setenv("PITCHGATE_SYNC_WORKERS", "4")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinScore, convey.ShouldEqual, 60)
				convey.So(cfg.SyncWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the handler is built over a memory service", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			cfg := config.New(ctx)
			cfg.Environment = config.EnvironmentDevelopment
			svc, err := app.New(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer func() { _ = svc.Stop(context.Background()) }()

			h := newHandler(ctx, cfg, svc)

			get := func(path string) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				return w
			}

			convey.Convey("Then every public route answers", func() {
				convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/metrics").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api/rules").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api/generate").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then a code can be requested and verified end to end", func() {
				post := func(body string) *httptest.ResponseRecorder {
					w := httptest.NewRecorder()
					r := httptest.NewRequest(http.MethodPost, "/api/verify-email", strings.NewReader(body))
					h.ServeHTTP(w, r)
					return w
				}
				w := post(`{"email":"ada@example.com","action":"request"}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				code := extractCode(w.Body.String())
				convey.So(code, convey.ShouldHaveLength, 6)

				w = post(`{"email":"ada@example.com","action":"verify","code":"` + code + `"}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				w = post(`{"email":"ada@example.com","action":"verify","code":"` + code + `"}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func extractCode(body string) string {
	const key = `"code":"`
	i := strings.Index(body, key)
	if i < 0 {
		return ""
	}
	rest := body[i+len(key):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return ""
	}
	return rest[:j]
}
