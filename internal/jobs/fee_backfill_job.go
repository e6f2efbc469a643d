package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FeeBackfillJob periodically resolves delivery fees for orders that were
// placed while the geocoding provider was degraded. Runs every 30 seconds.
type FeeBackfillJob struct {
	handler commands.ResolvePendingFeesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewFeeBackfillJob creates a job that retries fee resolution.
// Uses ResolvePendingFeesCommandHandler to process the backlog.
func NewFeeBackfillJob(handler commands.ResolvePendingFeesCommandHandler, logger *slog.Logger) *FeeBackfillJob {
	return &FeeBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "fee_backfill_job"),
	}
}

// Start begins the fee backfill job to run every 30 seconds.
func (j *FeeBackfillJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewResolvePendingFeesCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to construct fee backfill command", "error", err)
			return
		}

		resolved, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Fee backfill job failed", "error", err)
			return
		}

		if resolved > 0 {
			j.logger.InfoContext(ctx, "Fee backfill resolved orders", "count", resolved)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fee backfill job started (running every 30 seconds)")
	return nil
}

// Stop stops the fee backfill job.
func (j *FeeBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Fee backfill job stopped")
}
