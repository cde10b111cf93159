package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Executor = PromExecutorMetrics()
	Registry = PromRegistryMetrics()
	Transfer = PromTransferMetrics()
	API = PromAPIMetrics()
}
