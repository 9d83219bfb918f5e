package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// valueOf reads the current value of a counter or gauge.
func valueOf(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	if m.Gauge != nil {
		return m.Gauge.GetValue()
	}
	return 0
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry and custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then every collector is registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.teamsFormed.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_teams_formed_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording formation outcomes", func() {
			before := valueOf(globalManager.teamsFormed)
			RecordRun(4)
			RecordTeamFormed()
			RecordAssemblyFailure("no_thinker")
			RecordAssemblyLatency(0.3)
			RecordPeopleDiscarded(2)
			RecordPeopleReturned(1)
			UpdatePoolRemaining("LEADER", 3)
			RecordTasksAbandoned(0)
			RecordWorkerPanic()
			UpdateWorkerCount(4)
			RecordFormationDuration(12)
			UpdateQueueSize(1)
			RecordQueueEnqueue()
			RecordQueueDequeue()
			RecordQueueEnqueueError("closed")
			RecordBalanceSwap()
			RecordBalanceIterations(7)
			UpdateSkillSpread("final", 0.5)

			Convey("Then the counters and gauges reflect the calls", func() {
				So(valueOf(globalManager.teamsFormed), ShouldEqual, before+1)
				So(valueOf(globalManager.teamsPossible), ShouldEqual, 4)
				So(valueOf(globalManager.poolRemaining.WithLabelValues("LEADER")), ShouldEqual, 3)
				So(valueOf(globalManager.skillSpread.WithLabelValues("final")), ShouldEqual, 0.5)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given the process registry", t, func() {
		RecordTeamFormed()

		Convey("When writing it to a textfile", func() {
			path := filepath.Join(t.TempDir(), "teamforge.prom")
			err := WriteTextfile(path)

			Convey("Then the file holds the exposition format", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "teamforge_formation_teams_formed_total")
			})
		})

		Convey("When the path is empty", func() {
			err := WriteTextfile("")

			Convey("Then ErrWriteTextfile is returned", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})
}
