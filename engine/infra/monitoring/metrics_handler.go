package monitoring

// MetricsHandler godoc
//
//	@Summary		Prometheus metrics endpoint
//	@Description	Exposes application metrics in Prometheus exposition format.
//	@Description	Includes HTTP request rates and latencies, post cache hit ratios,
//	@Description	database pool statistics and Go runtime metrics.
//	@Tags			Operations
//	@Produce		plain
//	@Success		200	{string}	string	"Metrics in Prometheus format"
//	@Failure		503	{string}	string	"Monitoring service unavailable"
//	@Router			/metrics [get]
func MetricsHandler() {
}
