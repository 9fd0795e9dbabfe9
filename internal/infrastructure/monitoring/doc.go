/*
Package monitoring collects Prometheus metrics for the device and its HTTP
surface.

Each Metrics value owns a private registry, so several devices (and tests)
can coexist in one process. A nil *Metrics is valid and records nothing.

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordPowerTransition("locked", "unlocked")
	metrics.RecordOverlay("shade")
*/
package monitoring
