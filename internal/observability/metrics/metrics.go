package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "numerology_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	calculateTotal   *prometheus.CounterVec
	calculateLatency *prometheus.HistogramVec

	monthlyGridsTotal   *prometheus.CounterVec
	monthlyGridsLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	loginTotal    *prometheus.CounterVec
	registerTotal *prometheus.CounterVec
)

// Init registers service metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		calculateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculate_total",
				Help: "Total full profile calculations by result",
			},
			[]string{"result"},
		)
		calculateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculate_latency_seconds",
				Help:    "Full profile calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		monthlyGridsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "monthly_grids_total",
				Help: "Total monthly grid calculations by result",
			},
			[]string{"result"},
		)
		monthlyGridsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "monthly_grids_latency_seconds",
				Help:    "Monthly grid calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total profile export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Profile export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		loginTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "login_total",
				Help: "Total login attempts by result",
			},
			[]string{"result"},
		)
		registerTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "user_register_total",
				Help: "Total user registrations by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			calculateTotal,
			calculateLatency,
			monthlyGridsTotal,
			monthlyGridsLatency,
			exportTotal,
			exportLatency,
			loginTotal,
			registerTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveCalculate records full profile calculation latency and result.
func ObserveCalculate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if calculateTotal != nil {
		calculateTotal.WithLabelValues(result).Inc()
	}
	if calculateLatency != nil {
		calculateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveMonthlyGrids records monthly grid calculation latency and result.
func ObserveMonthlyGrids(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if monthlyGridsTotal != nil {
		monthlyGridsTotal.WithLabelValues(result).Inc()
	}
	if monthlyGridsLatency != nil {
		monthlyGridsLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncLogin increments the login attempt counter.
func IncLogin(result string) {
	if result == "" {
		result = resultSuccess
	}
	if loginTotal != nil {
		loginTotal.WithLabelValues(result).Inc()
	}
}

// IncRegister increments the user registration counter.
func IncRegister(result string) {
	if result == "" {
		result = resultSuccess
	}
	if registerTotal != nil {
		registerTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
