// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	ClimateRecordsIngested prometheus.Counter
	IngestErrors           *prometheus.CounterVec

	// Sweep metrics
	SweepRunsTotal   *prometheus.CounterVec
	SweepDuration    prometheus.Histogram
	SimulationsRun   prometheus.Counter
	ReportsGenerated prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "almond_yield_lab"
	}

	return &Metrics{
		ClimateRecordsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "climate_records_ingested_total",
			Help:      "Total number of daily climate records stored",
		}),
		IngestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "errors_total",
			Help:      "Total number of ingestion errors by type",
		}, []string{"error_type"}),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Total number of sensitivity sweep runs by status",
		}, []string{"status"}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Sensitivity sweep execution duration in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		SimulationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "simulations_total",
			Help:      "Total number of parameter draws evaluated",
		}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordIngested adds to the climate records ingested counter.
func RecordIngested(count int) {
	DefaultMetrics.ClimateRecordsIngested.Add(float64(count))
}

// RecordIngestError records an ingestion error by type.
func RecordIngestError(errorType string) {
	DefaultMetrics.IngestErrors.WithLabelValues(errorType).Inc()
}

// RecordSweepRun records one sweep run with its duration.
func RecordSweepRun(status string, durationSeconds float64) {
	DefaultMetrics.SweepRunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.SweepDuration.Observe(durationSeconds)
}

// RecordSimulations adds to the evaluated parameter draws counter.
func RecordSimulations(count int) {
	DefaultMetrics.SimulationsRun.Add(float64(count))
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}
