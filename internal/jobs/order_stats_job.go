package jobs

import (
	"context"
	"time"

	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultStatsSchedule runs the refresh at the start of every minute.
const DefaultStatsSchedule = "0 * * * * *"

// CompanyLister lists the companies that own at least one order.
type CompanyLister interface {
	ListCompanyIDs(ctx context.Context) ([]kernel.UUID, error)
}

// StatsHandler answers the dashboard counters query.
type StatsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error)
}

// OrderStatsJob periodically refreshes the per-company order gauges.
type OrderStatsJob struct {
	companies CompanyLister
	handler   StatsHandler
	metrics   *metrics.Metrics
	schedule  string
	clock     func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOrderStatsJob creates the job. An empty schedule means DefaultStatsSchedule.
func NewOrderStatsJob(
	companies CompanyLister,
	handler StatsHandler,
	m *metrics.Metrics,
	schedule string,
	clock func() time.Time,
	logger *zap.Logger,
) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	if clock == nil {
		clock = time.Now
	}
	return &OrderStatsJob{
		companies: companies,
		handler:   handler,
		metrics:   m,
		schedule:  schedule,
		clock:     clock,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "order_stats_job")),
	}
}

// Start registers the refresh on the schedule and starts the scheduler.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order stats job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("order stats job stopped")
}

// Run refreshes the gauges of every company once. A failing company is logged
// and skipped; the others are still refreshed.
func (j *OrderStatsJob) Run(ctx context.Context) {
	ids, err := j.companies.ListCompanyIDs(ctx)
	if err != nil {
		j.metrics.StatsJobErrorsTotal.Inc()
		j.logger.Error("listing companies failed", zap.Error(err))
		return
	}

	now := j.clock()
	for _, id := range ids {
		query, qErr := queries.NewGetOrderStatsQuery(id, now)
		if qErr != nil {
			j.metrics.StatsJobErrorsTotal.Inc()
			j.logger.Error("building stats query failed", zap.String("company_id", id.String()), zap.Error(qErr))
			continue
		}

		stats, hErr := j.handler.Handle(ctx, query)
		if hErr != nil {
			j.metrics.StatsJobErrorsTotal.Inc()
			j.logger.Error("stats refresh failed", zap.String("company_id", id.String()), zap.Error(hErr))
			continue
		}

		j.metrics.SetOrderStats(id.String(), stats.Active, stats.DeliveredToday, stats.Total)
	}

	j.logger.Debug("order stats refreshed", zap.Int("companies", len(ids)))
}
