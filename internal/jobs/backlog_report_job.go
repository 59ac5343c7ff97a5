package jobs

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// backlogSchedule runs the report at the top of every minute.
const backlogSchedule = "0 * * * * *"

type orderLister interface {
	ListByState(ctx context.Context) (map[order.Status][]*order.Order, error)
}

// BacklogReportJob logs how many orders wait in each non-final status, so
// that a stuck kitchen shows up in the logs.
type BacklogReportJob struct {
	service orderLister
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewBacklogReportJob(service orderLister, logger *slog.Logger) *BacklogReportJob {
	return &BacklogReportJob{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backlog_report_job"),
	}
}

func (j *BacklogReportJob) Start() error {
	if _, err := j.cron.AddFunc(backlogSchedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Backlog report job started", "schedule", backlogSchedule)
	return nil
}

func (j *BacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Backlog report job stopped")
}

func (j *BacklogReportJob) run(ctx context.Context) {
	grouped, err := j.service.ListByState(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "order backlog",
		"pending", len(grouped[order.Pending]),
		"in_preparation", len(grouped[order.InPreparation]),
		"ready", len(grouped[order.Ready]),
	)
}
