// Package metrics provides Prometheus metrics for team formation runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the teamforge process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Formation outcome
	runsTotal         prometheus.Counter
	teamsFormed       prometheus.Counter
	teamsPossible     prometheus.Gauge
	assemblyFailures  *prometheus.CounterVec
	assemblyLatency   prometheus.Histogram
	peopleDiscarded   prometheus.Counter
	peopleReturned    prometheus.Counter
	poolRemaining     *prometheus.GaugeVec
	tasksAbandoned    prometheus.Counter
	workerPanics      prometheus.Counter
	workerCount       prometheus.Gauge
	formationDuration prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueEnqueueTotal  prometheus.Counter
	queueDequeueTotal  prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Balancer
	balanceSwaps      prometheus.Counter
	balanceIterations prometheus.Histogram
	skillSpread       *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamforge",
		subsystem:        "formation",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus collectors.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "runs_total",
		Help: "Total number of team formation runs",
	})
	m.teamsFormed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "teams_formed_total",
		Help: "Total number of teams that passed validation",
	})
	m.teamsPossible = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "teams_possible",
		Help: "Leader pool size of the last run (upper bound on teams)",
	})
	m.assemblyFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "assembly_failures_total",
		Help: "Assembly attempts that produced no team, by reason",
	}, []string{"reason"})
	m.assemblyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "assembly_latency_milliseconds",
		Help:    "Latency of a single assembly task in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.peopleDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "people_discarded_total",
		Help: "People claimed by a failed assembly task and not returned to a pool",
	})
	m.peopleReturned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "people_returned_total",
		Help: "People returned to their pool after a failed assembly task",
	})
	m.poolRemaining = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "pool_remaining",
		Help: "People left in each category pool",
	}, []string{"category"})
	m.tasksAbandoned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "tasks_abandoned_total",
		Help: "Assembly tasks that did not report before the wait deadline",
	})
	m.workerPanics = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_panics_total",
		Help: "Assembly tasks that panicked and were recovered",
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Workers used by the last run",
	})
	m.formationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "run_duration_milliseconds",
		Help:    "Wall time of a whole formation run in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Jobs waiting in the assembly queue",
	})
	m.queueEnqueueTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_total",
		Help: "Jobs accepted by the assembly queue",
	})
	m.queueDequeueTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeue_total",
		Help: "Jobs handed to workers",
	})
	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Jobs rejected by the assembly queue, by reason",
	}, []string{"reason"})

	m.balanceSwaps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "balance_swaps_total",
		Help: "Member swaps applied by the skill balancer",
	})
	m.balanceIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "balance_iterations",
		Help:    "Iterations used by the skill balancer per run",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
	})
	m.skillSpread = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "skill_spread",
		Help: "Gap between strongest and weakest team average skill",
	}, []string{"stage"})
}

// RecordRun increments the run counter and sets the possible-teams gauge.
func RecordRun(possible int) {
	globalManager.runsTotal.Inc()
	globalManager.teamsPossible.Set(float64(possible))
}

// RecordTeamFormed increments the formed teams counter.
func RecordTeamFormed() {
	globalManager.teamsFormed.Inc()
}

// RecordAssemblyFailure records a discarded assembly attempt.
func RecordAssemblyFailure(reason string) {
	globalManager.assemblyFailures.WithLabelValues(reason).Inc()
}

// RecordAssemblyLatency records the latency of one assembly task.
func RecordAssemblyLatency(latencyMs float64) {
	globalManager.assemblyLatency.Observe(latencyMs)
}

// RecordPeopleDiscarded counts people lost by a failed assembly task.
func RecordPeopleDiscarded(n int) {
	globalManager.peopleDiscarded.Add(float64(n))
}

// RecordPeopleReturned counts people handed back to their pool.
func RecordPeopleReturned(n int) {
	globalManager.peopleReturned.Add(float64(n))
}

// UpdatePoolRemaining sets the remaining size of a category pool.
func UpdatePoolRemaining(category string, n int) {
	globalManager.poolRemaining.WithLabelValues(category).Set(float64(n))
}

// RecordTasksAbandoned counts tasks that missed the wait deadline.
func RecordTasksAbandoned(n int) {
	globalManager.tasksAbandoned.Add(float64(n))
}

// RecordWorkerPanic increments the recovered panic counter.
func RecordWorkerPanic() {
	globalManager.workerPanics.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordFormationDuration records the wall time of a run.
func RecordFormationDuration(latencyMs float64) {
	globalManager.formationDuration.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueTotal.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueTotal.Inc()
}

// RecordQueueEnqueueError records a rejected job.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// RecordBalanceSwap increments the balancer swap counter.
func RecordBalanceSwap() {
	globalManager.balanceSwaps.Inc()
}

// RecordBalanceIterations records the iterations used by one balancing pass.
func RecordBalanceIterations(n int) {
	globalManager.balanceIterations.Observe(float64(n))
}

// UpdateSkillSpread sets the skill spread for a stage ("initial" or "final").
func UpdateSkillSpread(stage string, spread float64) {
	globalManager.skillSpread.WithLabelValues(stage).Set(spread)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrWriteTextfile)
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
