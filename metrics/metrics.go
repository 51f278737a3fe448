package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Метрики калькулятора
	CalculatorOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_operations_total",
			Help: "Total number of calculator evaluations",
		},
		[]string{"type"}, // success, error
	)

	CalculatorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_errors_total",
			Help: "Failed evaluations by error kind",
		},
		[]string{"kind"},
	)

	CalculatorEvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "calculator_evaluation_duration_seconds",
			Help:    "Time spent evaluating one expression",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	CalculatorHistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_history_size",
			Help: "Current size of the evaluation history",
		},
	)

	ActiveSocketSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_socket_sessions_active",
			Help: "Number of open WebSocket keypad sessions",
		},
	)
)

// ObserveEvaluation - учёт результата одного вычисления
func ObserveEvaluation(seconds float64, errKind string) {
	CalculatorEvaluationDuration.Observe(seconds)
	if errKind == "" {
		CalculatorOperations.WithLabelValues("success").Inc()
		return
	}
	CalculatorOperations.WithLabelValues("error").Inc()
	CalculatorErrors.WithLabelValues(errKind).Inc()
}

func UpdateHistorySize(historySize int) {
	CalculatorHistorySize.Set(float64(historySize))
}
