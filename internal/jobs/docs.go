// Package jobs provides scheduled background tasks for the delivery portal.
//
// Jobs are cron-based (github.com/robfig/cron/v3 with a seconds field) and are
// started and stopped together through JobManager:
//
//	statsJob := jobs.NewOrderStatsJob(repo, statsHandler, m, cfg.StatsJobSchedule, nil, logger)
//	jobManager := jobs.NewJobManager(statsJob)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// OrderStatsJob recomputes the dashboard counters of every company and exports
// them as Prometheus gauges. Failures are logged and counted, never fatal.
package jobs
