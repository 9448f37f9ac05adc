package dudect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements Recorder, exposing the last reported
// verdict's statistics as gauges and a running count of completed runs as
// a counter. Wiring it is purely observational: nothing it touches feeds
// back into the decision ladder in context.go: reporting only observes the
// verdict thresholds, it never shapes them.
type PrometheusRecorder struct {
	maxT              prometheus.Gauge
	maxTau            prometheus.Gauge
	samplesNeeded     prometheus.Gauge
	totalMeasurements prometheus.Gauge
	runsTotal         *prometheus.CounterVec
}

// NewPrometheusRecorder registers its metrics with reg and returns a
// Recorder ready to attach via MeasurementContext.SetRecorder.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		maxT: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dudect_max_t",
			Help: "Absolute Welch t statistic of the winning test in the most recent run.",
		}),
		maxTau: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dudect_max_tau",
			Help: "max_t normalized by sqrt(total measurements) in the most recent run.",
		}),
		samplesNeeded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dudect_samples_needed_estimate",
			Help: "Estimated samples needed to reach a t value of 5, from the most recent run.",
		}),
		totalMeasurements: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dudect_total_measurements",
			Help: "Combined sample count across both groups in the winning test.",
		}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dudect_runs_total",
			Help: "Completed measurement runs, labeled by verdict.",
		}, []string{"verdict"}),
	}
}

// ObserveRun implements Recorder.
func (p *PrometheusRecorder) ObserveRun(maxT, maxTau, samplesNeeded, totalMeasurements float64, verdict MeasurementRunResult) {
	p.maxT.Set(maxT)
	p.maxTau.Set(maxTau)
	p.samplesNeeded.Set(samplesNeeded)
	p.totalMeasurements.Set(totalMeasurements)
	p.runsTotal.WithLabelValues(verdict.String()).Inc()
}
