// Package promhooks implements the observability hooks with Prometheus
// metrics.
//
//	reg := prometheus.NewRegistry()
//	hooks, err := promhooks.New(reg)
//	if err != nil { ... }
//	observability.SetRoadSystemHooks(hooks)
//	observability.SetCriteriaHooks(hooks)
package promhooks

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/roadnet/pkg/errors"
)

// Hooks counts road-system and criteria events. It satisfies both
// observability.RoadSystemHooks and observability.CriteriaHooks.
type Hooks struct {
	SegmentsCreated    *prometheus.CounterVec
	ElementsRemoved    *prometheus.CounterVec
	Connects           prometheus.Counter
	Disconnects        *prometheus.CounterVec
	Checks             *prometheus.CounterVec
	CheckDurations     *prometheus.HistogramVec
	ViolationsAdded    *prometheus.CounterVec
	ViolationsRemoved  *prometheus.CounterVec
	ViolationsInFlight *prometheus.GaugeVec
}

// New registers the metrics against reg, defaulting to the global
// registry when nil.
func New(reg prometheus.Registerer) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		SegmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_segments_created_total",
			Help: "Segments created, labeled by segment type.",
		}, []string{"type"}),
		ElementsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_elements_removed_total",
			Help: "Elements removed, labeled by kind.",
		}, []string{"kind"}),
		Connects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roadnet_connections_created_total",
			Help: "Connections created.",
		}),
		Disconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_connections_removed_total",
			Help: "Connections removed, labeled by whether a connector move broke them.",
		}, []string{"auto"}),
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_criterion_checks_total",
			Help: "Segment evaluations, labeled by criterion type.",
		}, []string{"criterion"}),
		CheckDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadnet_criterion_check_duration_seconds",
			Help:    "Segment evaluation latency in seconds.",
			Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 1e-2},
		}, []string{"criterion"}),
		ViolationsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_violations_added_total",
			Help: "Violations published, labeled by criterion type.",
		}, []string{"criterion"}),
		ViolationsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnet_violations_removed_total",
			Help: "Violations retracted, labeled by criterion type.",
		}, []string{"criterion"}),
		ViolationsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "roadnet_violations",
			Help: "Currently published violations, labeled by criterion type.",
		}, []string{"criterion"}),
	}

	for _, c := range []prometheus.Collector{
		h.SegmentsCreated, h.ElementsRemoved, h.Connects, h.Disconnects,
		h.Checks, h.CheckDurations, h.ViolationsAdded, h.ViolationsRemoved, h.ViolationsInFlight,
	} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "register metrics")
		}
	}
	return h, nil
}

func (h *Hooks) OnSegmentCreated(segmentType string) {
	h.SegmentsCreated.WithLabelValues(segmentType).Inc()
}

func (h *Hooks) OnElementRemoved(kind string) { h.ElementsRemoved.WithLabelValues(kind).Inc() }

func (h *Hooks) OnConnect() { h.Connects.Inc() }

func (h *Hooks) OnDisconnect(auto bool) {
	h.Disconnects.WithLabelValues(strconv.FormatBool(auto)).Inc()
}

func (h *Hooks) OnCheck(criterionType string, d time.Duration) {
	h.Checks.WithLabelValues(criterionType).Inc()
	h.CheckDurations.WithLabelValues(criterionType).Observe(d.Seconds())
}

func (h *Hooks) OnViolationAdded(criterionType string) {
	h.ViolationsAdded.WithLabelValues(criterionType).Inc()
	h.ViolationsInFlight.WithLabelValues(criterionType).Inc()
}

func (h *Hooks) OnViolationRemoved(criterionType string) {
	h.ViolationsRemoved.WithLabelValues(criterionType).Inc()
	h.ViolationsInFlight.WithLabelValues(criterionType).Dec()
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write metrics to %s", path)
	}
	return nil
}
