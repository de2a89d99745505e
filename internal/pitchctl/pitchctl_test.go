package pitchctl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchgate/internal/adapters/http/api"
	app "github.com/okian/pitchgate/internal/app"
	"github.com/okian/pitchgate/internal/config"
	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/pitchctl"
	"github.com/okian/pitchgate/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(logger.WithWriter(io.Discard))
	os.Exit(m.Run())
}

func writeJSONFile(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScoreCommand(t *testing.T) {
	Convey("Given a complete form on disk", t, func() {
		path := writeJSONFile(t, pitchctl.SampleForm())
		form, err := pitchctl.ReadForm(path)
		So(err, ShouldBeNil)

		Convey("When it is scored", func() {
			preview, gateErr := pitchctl.Score(form, gate.DefaultMinScore)

			Convey("Then it earns full marks and the report says so", func() {
				So(gateErr, ShouldBeNil)
				So(preview.Percentage, ShouldEqual, 100)
				So(preview.Sparkle, ShouldBeTrue)

				var out bytes.Buffer
				So(pitchctl.WriteReport(&out, preview, gateErr), ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Score   100%")
				So(out.String(), ShouldContainSubstring, "[x] Recent Guest")
				So(out.String(), ShouldContainSubstring, "Generation allowed (minimum 50%)")
			})
		})

		Convey("When required fields are cleared", func() {
			form.GuestName = ""
			preview, gateErr := pitchctl.Score(form, gate.DefaultMinScore)

			Convey("Then the report shows the gate blocking", func() {
				So(errors.Is(gateErr, gate.ErrMissingRequiredFields), ShouldBeTrue)
				var out bytes.Buffer
				So(pitchctl.WriteReport(&out, preview, gateErr), ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "[ ] Recent Guest")
				So(out.String(), ShouldContainSubstring, "Generation blocked")
			})
		})
	})

	Convey("A missing file is reported", t, func() {
		_, err := pitchctl.ReadForm(filepath.Join(t.TempDir(), "nope.json"))
		So(errors.Is(err, pitchctl.ErrReadForm), ShouldBeTrue)
	})
}

func TestRevealCommand(t *testing.T) {
	Convey("Given a generate response on disk", t, func() {
		v := model.PitchVariant{Subject: "s", Body: "b"}
		path := writeJSONFile(t, map[string]interface{}{
			"success": true,
			"pitches": model.Pitches{Pitch1: v, Pitch2: v, Pitch3: v},
		})
		p, err := pitchctl.ReadPitches(path)
		So(err, ShouldBeNil)
		So(p.Pitch2.Subject, ShouldEqual, "s")

		Convey("Then unverified readers only see the first pitch", func() {
			view := pitchctl.Reveal(p, false)
			So(view.Visible.Pitch1, ShouldNotBeNil)
			So(view.Visible.Pitch2, ShouldBeNil)
			So(len(view.Locked), ShouldEqual, 5)
		})

		Convey("Then verified readers see everything", func() {
			view := pitchctl.Reveal(p, true)
			So(view.Visible.Pitch3, ShouldNotBeNil)
			So(view.Locked, ShouldBeEmpty)

			var out bytes.Buffer
			So(pitchctl.WriteReveal(&out, view), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"verified": true`)
		})
	})
}

func TestSmokeRun(t *testing.T) {
	Convey("Given a development server", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cfg := config.New(ctx)
		cfg.Environment = config.EnvironmentDevelopment
		svc, err := app.New(cfg)
		So(err, ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When the smoke run executes", func() {
			stats, err := pitchctl.Run(ctx, &pitchctl.Config{
				BaseURL:  srv.URL,
				Requests: 20,
				Workers:  4,
				Timeout:  5 * time.Second,
			})

			Convey("Then every step succeeds", func() {
				So(err, ShouldBeNil)
				So(stats.ScoresSubmitted, ShouldEqual, 20)
				So(stats.ScoresSuccessful, ShouldEqual, 20)
				So(stats.CodeRequested, ShouldBeTrue)
				So(stats.EmailVerified, ShouldBeTrue)
				So(stats.Generated, ShouldBeFalse)
			})
		})
	})

	Convey("Given no server", t, func() {
		_, err := pitchctl.Run(context.Background(), &pitchctl.Config{
			BaseURL: "http://127.0.0.1:1", Requests: 1, Workers: 1, Timeout: time.Second,
		})
		So(err, ShouldNotBeNil)
	})
}
