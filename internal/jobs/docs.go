// Package jobs provides scheduled background reports for the cafeteria.
//
// Jobs use github.com/robfig/cron/v3 with the six-field (seconds first)
// format:
//
//   - SalesReportJob logs the day's delivered orders and revenue, by default
//     at 23:55 (SALES_REPORT_SCHEDULE overrides it).
//   - BacklogReportJob logs every minute the number of orders in each open
//     status.
//
// JobManager starts both, and a failed start stops the jobs already running:
//
//	jobManager := jobs.NewJobManager(service, cfg.SalesReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Job failures are logged and never stop the schedule.
package jobs
