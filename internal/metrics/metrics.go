package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the attendance collectors.
type Metrics struct {
	LoginAttempts *prometheus.CounterVec
	Records       prometheus.Gauge
	Exports       *prometheus.CounterVec
	Resets        prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "attendance",
			Name:      "records",
			Help:      "Records in the attendance log.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "csv_exports_total",
			Help:      "CSV export requests by result.",
		}, []string{"result"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "resets_total",
			Help:      "Logout resets.",
		}),
	}
	reg.MustRegister(m.LoginAttempts, m.Records, m.Exports, m.Resets)
	return m
}

// ObserveLogin counts one attempt and tracks the log size.
func (m *Metrics) ObserveLogin(result string, records int) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
	m.Records.Set(float64(records))
}

// ObserveExport counts one export request.
func (m *Metrics) ObserveExport(result string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(result).Inc()
}

// ObserveReset counts one logout.
func (m *Metrics) ObserveReset() {
	if m == nil {
		return
	}
	m.Resets.Inc()
}
