package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type RegistryMetrics struct {
	Members           metrics.Gauge
	Receipts          metrics.Gauge
	GlobalRequirement metrics.Gauge
}

func (r *RegistryMetrics) SetMembers(num int) {
	r.Members.Set(float64(num))
}
func (r *RegistryMetrics) AddMembers(delta int) {
	r.Members.Add(float64(delta))
}
func (r *RegistryMetrics) SetReceipts(total uint64) {
	r.Receipts.Set(float64(total))
}
func (r *RegistryMetrics) AddReceipts(delta int) {
	r.Receipts.Add(float64(delta))
}
func (r *RegistryMetrics) SetGlobalRequirement(required uint64) {
	r.GlobalRequirement.Set(float64(required))
}

func PromRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		Members: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "members",
			Help:      "Number of current members.",
		}, []string{}),
		Receipts: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "receipts",
			Help:      "Total number of receipts.",
		}, []string{}),
		GlobalRequirement: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RegistrySubsystem,
			Name:      "global_requirement",
			Help:      "Stake required for membership unless overridden.",
		}, []string{}),
	}
}

func NopRegistryMetrics() *RegistryMetrics {
	return &RegistryMetrics{
		Members:           discard.NewGauge(),
		Receipts:          discard.NewGauge(),
		GlobalRequirement: discard.NewGauge(),
	}
}
