package jobs

import (
	"context"
	"fmt"

	"github.com/ml-registry/model-registry/pkg/metrics"
	"github.com/ml-registry/model-registry/pkg/registry/services"
	"github.com/ml-registry/model-registry/pkg/tools"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const statsRefreshTool = "stats_refresh"

// RefreshStats recomputes the dashboard statistics and publishes them as gauges.
func RefreshStats(ctx context.Context, svc *services.StatsService, m *metrics.Metrics) error {
	stats, err := svc.GetDashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("refresh stats: %w", err)
	}
	m.ObserveStats(stats.TotalModels, stats.ModelsByStatus, stats.ModelsByFramework)
	return nil
}

// ScheduleStatsRefresh runs RefreshStats once right away and then on
// schedule until ctx is cancelled.
func ScheduleStatsRefresh(ctx context.Context, schedule string, svc *services.StatsService, m *metrics.Metrics, logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("jobs")

	run := func() {
		tools.Dispatch(ctx, logger, statsRefreshTool, func(ctx context.Context) error {
			return RefreshStats(ctx, svc, m)
		})
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		return nil, fmt.Errorf("invalid stats refresh schedule %q: %w", schedule, err)
	}
	run()
	c.Start()
	logger.Info("stats refresh scheduled", zap.String("schedule", schedule))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
