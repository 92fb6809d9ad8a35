// Package metrics counts saver activity with Prometheus collectors.
//
// A nil *Metrics is valid and records nothing, so the saver can call it
// unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "slotsave"

// Slot labels.
const (
	SlotSave    = "save"
	SlotProfile = "profile"
)

// Source and target labels.
const (
	SourceFile     = "file"
	SourceOverride = "override"
	SourceDefault  = "default"
)

type Metrics struct {
	loads          *prometheus.CounterVec
	writes         *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
	wipes          prometheus.Counter
}

// New registers the saver collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Slot loads by slot kind and where the value came from.",
		}, []string{"slot", "source"}),
		writes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Slot writes by slot kind and target.",
		}, []string{"slot", "target"}),
		decodeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Slot files that could not be decoded and were replaced by defaults.",
		}, []string{"slot"}),
		wipes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wipes_total",
			Help:      "Delete-all-saves operations.",
		}),
	}
}

func (m *Metrics) Load(slot, source string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(slot, source).Inc()
}

func (m *Metrics) Write(slot, target string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(slot, target).Inc()
}

func (m *Metrics) DecodeFailure(slot string) {
	if m == nil {
		return
	}
	m.decodeFailures.WithLabelValues(slot).Inc()
}

func (m *Metrics) Wipe() {
	if m == nil {
		return
	}
	m.wipes.Inc()
}
