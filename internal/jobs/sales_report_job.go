package jobs

import (
	"context"
	"log/slog"
	"time"

	"cafeteria/internal/core/application/fulfillment"

	"github.com/robfig/cron/v3"
)

// DefaultSalesReportSchedule runs the report at 23:55:00 every day.
const DefaultSalesReportSchedule = "0 55 23 * * *"

type salesSummarizer interface {
	SalesSummary(ctx context.Context, start, end time.Time) (fulfillment.SalesSummary, error)
}

// SalesReportJob logs the delivered orders and revenue of the current day.
type SalesReportJob struct {
	service  salesSummarizer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewSalesReportJob creates the job. An empty schedule means
// DefaultSalesReportSchedule; schedules use the six-field cron format.
func NewSalesReportJob(service salesSummarizer, schedule string, logger *slog.Logger) *SalesReportJob {
	if schedule == "" {
		schedule = DefaultSalesReportSchedule
	}
	return &SalesReportJob{
		service:  service,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sales_report_job"),
		now:      time.Now,
	}
}

func (j *SalesReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Sales report job started", "schedule", j.schedule)
	return nil
}

func (j *SalesReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Sales report job stopped")
}

func (j *SalesReportJob) run(ctx context.Context) {
	today := j.now()

	summary, err := j.service.SalesSummary(ctx, today, today)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sales report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "daily sales",
		"date", today.Format(time.DateOnly),
		"delivered_orders", summary.DeliveredOrders,
		"revenue", summary.Revenue.String(),
	)
}
