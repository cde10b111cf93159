package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type TransferMetrics struct {
	CallsTotal      metrics.Counter
	ErrorTotal      metrics.Counter
	DurationSeconds metrics.Histogram
}

func (t *TransferMetrics) ObserveDurationSeconds(begin time.Time, component string) {
	if component == "" {
		component = TransferAll
	}
	t.DurationSeconds.With(TransferComponent, component).Observe(time.Since(begin).Seconds())
}

func (t *TransferMetrics) AddSend() {
	t.CallsTotal.With(TransferComponent, TransferSend).Add(1)
}
func (t *TransferMetrics) AddSendError() {
	t.ErrorTotal.With(TransferComponent, TransferSend).Add(1)
}
func (t *TransferMetrics) AddBalance() {
	t.CallsTotal.With(TransferComponent, TransferBalance).Add(1)
}
func (t *TransferMetrics) AddBalanceError() {
	t.ErrorTotal.With(TransferComponent, TransferBalance).Add(1)
}

func PromTransferMetrics() *TransferMetrics {
	return &TransferMetrics{
		CallsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TransferSubsystem,
			Name:      "calls_total",
			Help:      "Number of calls to the transfer agent.",
		}, []string{TransferComponent}),
		ErrorTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TransferSubsystem,
			Name:      "error_total",
			Help:      "Number of failed transfer agent calls.",
		}, []string{TransferComponent}),
		DurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: TransferSubsystem,
			Name:      "duration_seconds",
			Help:      "Time spent in one transfer agent call.",
		}, []string{TransferComponent}),
	}
}

func NopTransferMetrics() *TransferMetrics {
	return &TransferMetrics{
		CallsTotal:      discard.NewCounter(),
		ErrorTotal:      discard.NewCounter(),
		DurationSeconds: discard.NewHistogram(),
	}
}
