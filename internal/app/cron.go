package app

import (
	"context"
	"fmt"
	"time"

	"github.com/newsbrief/core/internal/config"
	"github.com/newsbrief/core/internal/modules/news"
	pkgcron "github.com/newsbrief/core/internal/pkg/cron"
	"github.com/newsbrief/core/internal/store"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, newsSvc *news.Service, st *store.Store, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "prefetch_news",
		Description: fmt.Sprintf("warm the news cache at %v local time", cfg.Prefetch.Hours),
		Hours:       cfg.Prefetch.Hours,
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			if cfg.Anthropic.APIKey == "" {
				cronLogger.Warn("prefetch skipped: no API key configured")
				return nil
			}
			return newsSvc.PrefetchAll(ctx)
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "purge_expired",
		Description: fmt.Sprintf("delete cached news and briefings older than %d days", cfg.RetentionDays),
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := st.PurgeOlderThan(ctx, cfg.RetentionDays)
			if err != nil {
				cronLogger.Warn("retention sweep failed", zap.Error(err))
				return err
			}
			cronLogger.Info("retention sweep done", zap.Int64("deleted", deleted))
			return nil
		},
	})
}
