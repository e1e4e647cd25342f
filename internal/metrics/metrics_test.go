package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry and namespace", func() {
			registry := prometheus.NewRegistry()
			m := New(WithRegistry(registry), WithNamespace("test"))

			Convey("Then the instruments should be registered under that namespace", func() {
				m.ObserveFrame(time.Millisecond, true)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "test_")
				}
			})
		})

		Convey("When creating two managers without a registry", func() {
			Convey("Then they should not collide", func() {
				So(func() {
					New()
					New()
				}, ShouldNotPanic)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager", t, func() {
		m := New()

		Convey("When frames are observed", func() {
			m.ObserveFrame(2*time.Millisecond, true)
			m.ObserveFrame(3*time.Millisecond, false)
			m.FrameSkipped()

			Convey("Then frame counters should reflect them", func() {
				So(testutil.ToFloat64(m.framesProcessed), ShouldEqual, 2)
				So(testutil.ToFloat64(m.framesWithout), ShouldEqual, 1)
				So(testutil.ToFloat64(m.framesSkipped), ShouldEqual, 1)
			})
		})

		Convey("When commands and errors are recorded", func() {
			m.CommandEmitted("pause")
			m.CommandEmitted("pause")
			m.CommandEmitted("seek-forward")
			m.SinkError("robotgo")
			m.DetectError()

			Convey("Then they should be counted by label", func() {
				So(testutil.ToFloat64(m.commandsEmitted.WithLabelValues("pause")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.commandsEmitted.WithLabelValues("seek-forward")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.sinkErrors.WithLabelValues("robotgo")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.detectErrors), ShouldEqual, 1)
			})
		})

		Convey("When gauges are set", func() {
			m.SetLatch(true)
			m.SetMediaState(2)

			Convey("Then they should hold the latest value", func() {
				So(testutil.ToFloat64(m.latchEngaged), ShouldEqual, 1)
				So(testutil.ToFloat64(m.mediaState), ShouldEqual, 2)

				m.SetLatch(false)
				So(testutil.ToFloat64(m.latchEngaged), ShouldEqual, 0)
			})
		})

		Convey("When scraped over HTTP", func() {
			m.CommandEmitted("button-press")
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the exposition should include the counter", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), `mudra_commands_emitted_total{kind="button-press"} 1`), ShouldBeTrue)
			})
		})
	})
}

func TestNilManager(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Recording should be a no-op", func() {
			So(func() {
				m.ObserveFrame(time.Millisecond, false)
				m.FrameSkipped()
				m.CommandEmitted("pause")
				m.SinkError("log")
				m.DetectError()
				m.SetLatch(true)
				m.SetMediaState(1)
			}, ShouldNotPanic)
			So(m.Registry(), ShouldBeNil)
		})
	})
}
