package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mr1hm/go-disaster-maps/internal/ingestion"
)

// Metrics holds the Prometheus counters for dataset loads and rendered plots.
type Metrics struct {
	Fetches       *prometheus.CounterVec // labels: source, outcome={ok,transport,schema,empty,io}
	Samples       *prometheus.CounterVec // labels: source
	SkippedRecord *prometheus.CounterVec // labels: source
	PlotsRendered *prometheus.CounterVec // labels: plot
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_maps",
			Name:      "fetches_total",
			Help:      "Dataset loads by source and outcome.",
		}, []string{"source", "outcome"}),
		Samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_maps",
			Name:      "samples_total",
			Help:      "Samples accepted from upstream datasets.",
		}, []string{"source"}),
		SkippedRecord: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_maps",
			Name:      "samples_skipped_total",
			Help:      "Upstream records dropped during parsing.",
		}, []string{"source"}),
		PlotsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_maps",
			Name:      "plots_rendered_total",
			Help:      "Plot files written, by plot title.",
		}, []string{"plot"}),
	}

	reg.MustRegister(
		m.Fetches,
		m.Samples,
		m.SkippedRecord,
		m.PlotsRendered,
	)

	return m
}

// ObserveLoad records one loader call.
func (m *Metrics) ObserveLoad(source string, accepted, skipped int, err error) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(source, outcome(err)).Inc()
	m.Samples.WithLabelValues(source).Add(float64(accepted))
	m.SkippedRecord.WithLabelValues(source).Add(float64(skipped))
}

func (m *Metrics) ObservePlot(title string) {
	if m == nil {
		return
	}
	m.PlotsRendered.WithLabelValues(title).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var le *ingestion.LoadError
	if errors.As(err, &le) {
		return le.Kind.String()
	}
	return "error"
}
