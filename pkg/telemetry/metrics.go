// Package telemetry exports client session metrics to Prometheus and traces
// connection setup with OpenTelemetry.
//
// Every method on *Metrics is safe to call on a nil receiver, so components
// can record unconditionally and callers opt in by passing a Metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/netsync/pkg/events"
)

// Channel label values.
const (
	ChannelReliable   = "reliable"
	ChannelUnreliable = "unreliable"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "netsync").
	Namespace string

	// Subsystem is the metrics subsystem (default: "client").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// CorrectionBuckets are the histogram buckets for reconcile corrections,
	// in world units.
	CorrectionBuckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithCorrectionBuckets sets the correction histogram buckets.
func WithCorrectionBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.CorrectionBuckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:         "netsync",
		Subsystem:         "client",
		CorrectionBuckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		Registry:          prometheus.DefaultRegisterer,
	}
}

// Metrics holds the session's Prometheus collectors.
//
// Metrics collected (with the default namespace and subsystem):
//   - netsync_client_frames_received_total: frames by channel
//   - netsync_client_frames_malformed_total: undecodable frames by channel
//   - netsync_client_snapshots_applied_total: snapshots pushed to a buffer
//   - netsync_client_snapshots_stale_total: snapshots older than the buffer head
//   - netsync_client_deltas_rejected_total: deltas with a missing or wrong base
//   - netsync_client_events_total: game event batches by outcome
//   - netsync_client_reconcile_correction: histogram of reconcile corrections
//   - netsync_client_rtt_seconds: smoothed round-trip time
//   - netsync_client_inputs_total: input commands by result
//   - netsync_client_handshakes_total: handshakes by result
type Metrics struct {
	framesReceived   *prometheus.CounterVec
	framesMalformed  *prometheus.CounterVec
	snapshotsApplied prometheus.Counter
	snapshotsStale   prometheus.Counter
	deltasRejected   prometheus.Counter
	eventBatches     *prometheus.CounterVec
	corrections      prometheus.Histogram
	rtt              prometheus.Gauge
	inputs           *prometheus.CounterVec
	handshakes       *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors. Registering twice on the
// same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_received_total",
			Help:        "Total number of frames received",
			ConstLabels: config.ConstLabels,
		}, []string{"channel"}),

		framesMalformed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_malformed_total",
			Help:        "Total number of frames dropped because they did not decode",
			ConstLabels: config.ConstLabels,
		}, []string{"channel"}),

		snapshotsApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshots_applied_total",
			Help:        "Total number of snapshots accepted into an interpolation buffer",
			ConstLabels: config.ConstLabels,
		}),

		snapshotsStale: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshots_stale_total",
			Help:        "Total number of snapshots dropped as older than the newest buffered one",
			ConstLabels: config.ConstLabels,
		}),

		deltasRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deltas_rejected_total",
			Help:        "Total number of deltas dropped for a missing or mismatched base",
			ConstLabels: config.ConstLabels,
		}),

		eventBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total game event batches by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		corrections: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_correction",
			Help:        "Distance the predicted position moved on reconcile",
			ConstLabels: config.ConstLabels,
			Buckets:     config.CorrectionBuckets,
		}),

		rtt: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rtt_seconds",
			Help:        "Smoothed round-trip time to the server",
			ConstLabels: config.ConstLabels,
		}),

		inputs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "inputs_total",
			Help:        "Total input commands by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		handshakes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handshakes_total",
			Help:        "Total handshakes by result code",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
	}
}

// =============================================================================
// Recording Functions
// =============================================================================

// RecordFrame records one received frame on channel.
func (m *Metrics) RecordFrame(channel string) {
	if m != nil {
		m.framesReceived.WithLabelValues(channel).Inc()
	}
}

// RecordMalformed records one frame dropped on channel.
func (m *Metrics) RecordMalformed(channel string) {
	if m != nil {
		m.framesMalformed.WithLabelValues(channel).Inc()
	}
}

// RecordSnapshot records a snapshot push result.
func (m *Metrics) RecordSnapshot(applied bool) {
	if m == nil {
		return
	}
	if applied {
		m.snapshotsApplied.Inc()
	} else {
		m.snapshotsStale.Inc()
	}
}

// RecordDeltaRejected records a delta the decoder could not apply.
func (m *Metrics) RecordDeltaRejected() {
	if m != nil {
		m.deltasRejected.Inc()
	}
}

// RecordEventStats adds the batch counters that changed between two
// snapshots of a queue's cumulative stats. A reset between them (counters
// going backwards) records nothing.
func (m *Metrics) RecordEventStats(before, after events.Stats) {
	if m == nil {
		return
	}
	add := func(outcome string, b, a uint64) {
		if a > b {
			m.eventBatches.WithLabelValues(outcome).Add(float64(a - b))
		}
	}
	add("enqueued", before.EnqueuedBatches, after.EnqueuedBatches)
	add("late", before.LateBatches, after.LateBatches)
	add("dropped", before.DroppedBatches, after.DroppedBatches)
	add("drained", before.DrainedBatches, after.DrainedBatches)
}

// RecordCorrection records the distance moved by one reconcile.
func (m *Metrics) RecordCorrection(distance float64) {
	if m != nil {
		m.corrections.Observe(distance)
	}
}

// SetRTT records the smoothed round-trip time in milliseconds.
func (m *Metrics) SetRTT(ms float64) {
	if m != nil {
		m.rtt.Set(ms / 1000)
	}
}

// RecordInput records one input command send.
func (m *Metrics) RecordInput(err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.inputs.WithLabelValues(result).Inc()
}

// RecordHandshake records a handshake outcome. Code is empty on success and
// the error registry code otherwise.
func (m *Metrics) RecordHandshake(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	m.handshakes.WithLabelValues(code).Inc()
}
