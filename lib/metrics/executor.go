package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type ExecutorMetrics struct {
	EnvelopesTotal  metrics.Counter
	OperationsTotal metrics.Counter
	ErrorTotal      metrics.Counter
	DurationSeconds metrics.Histogram
}

func (e *ExecutorMetrics) AddEnvelope() {
	e.EnvelopesTotal.Add(1)
}
func (e *ExecutorMetrics) AddOperation(opType string) {
	e.OperationsTotal.With(ExecutorOperationType, opType).Add(1)
}
func (e *ExecutorMetrics) AddError() {
	e.ErrorTotal.Add(1)
}
func (e *ExecutorMetrics) ObserveDurationSeconds(begin time.Time) {
	e.DurationSeconds.Observe(time.Since(begin).Seconds())
}

func PromExecutorMetrics() *ExecutorMetrics {
	return &ExecutorMetrics{
		EnvelopesTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ExecutorSubsystem,
			Name:      "envelopes_total",
			Help:      "Total number of applied envelopes.",
		}, []string{}),
		OperationsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ExecutorSubsystem,
			Name:      "operations_total",
			Help:      "Total number of applied operations.",
		}, []string{ExecutorOperationType}),
		ErrorTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ExecutorSubsystem,
			Name:      "error_total",
			Help:      "Number of rejected envelopes.",
		}, []string{}),
		DurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: ExecutorSubsystem,
			Name:      "duration_seconds",
			Help:      "Time applying one envelope.",
		}, []string{}),
	}
}

func NopExecutorMetrics() *ExecutorMetrics {
	return &ExecutorMetrics{
		EnvelopesTotal:  discard.NewCounter(),
		OperationsTotal: discard.NewCounter(),
		ErrorTotal:      discard.NewCounter(),
		DurationSeconds: discard.NewHistogram(),
	}
}
