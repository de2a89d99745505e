package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors use the custom namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.codesIssued.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_verification_codes_issued_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "pitchgate")
				So(manager.subsystem, ShouldEqual, "api")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording domain metrics", func() {
			before := testutil.ToFloat64(globalManager.gateRejections.WithLabelValues("insufficient_score"))
			RecordGateRejection("insufficient_score")

			Convey("Then the counter moves", func() {
				after := testutil.ToFloat64(globalManager.gateRejections.WithLabelValues("insufficient_score"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording every helper", func() {
			So(func() {
				RecordScore("preview", 93)
				RecordGeneration("success", 1200)
				RecordVerification("verified")
				RecordCodeIssued()
				UpdateCodeStoreSize(3)
				RecordRateLimited("generate")
				RecordCRMSync("success")
				RecordCRMSyncDuplicate()
				RecordHTTPRequest("/api/score", "POST", "200")
				RecordHTTPRequestDuration("/api/score", "POST", "200", 2.5)
				RecordErrorByEndpoint("/api/generate", "POST", "client_error")
				RecordErrorByType("client_error", "warning")
				UpdateQueueSize(1)
				UpdateQueueCapacity(10)
				UpdateQueueUtilization(0.1)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(2)
				RecordWorkerProcessingLatency(3)
				RecordWorkerError()
				RecordWorkerRetry()
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			RecordCodeIssued()
			families, err := GetRegistry().Gather()

			Convey("Then only pitchgate metrics are exported", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "pitchgate_"), ShouldBeTrue)
				}
			})
		})
	})
}
