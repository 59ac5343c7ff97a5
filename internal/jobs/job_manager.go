package jobs

import (
	"fmt"
	"log/slog"
)

// Service is what the scheduled jobs read from.
type Service interface {
	salesSummarizer
	orderLister
}

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	salesReportJob   *SalesReportJob
	backlogReportJob *BacklogReportJob
}

// NewJobManager creates the jobs. salesSchedule may be empty.
func NewJobManager(service Service, salesSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		salesReportJob:   NewSalesReportJob(service, salesSchedule, logger),
		backlogReportJob: NewBacklogReportJob(service, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.salesReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start sales report job: %w", err)
	}

	if err := jm.backlogReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.salesReportJob.Stop()
		return fmt.Errorf("failed to start backlog report job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.backlogReportJob.Stop()
	jm.salesReportJob.Stop()
}
