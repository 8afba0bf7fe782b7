package app

import (
	"context"
	"fmt"

	"github.com/vk/easywork/internal/ctxlog"
)

// Run opens the graph, starts the health check server if enabled, drives
// the graph to completion or cancellation, then closes it — the same
// open/run/close shape the teacher's App.Run drives over its dag.Graph and
// executor.Executor, here over graph.Graph and graph.Executor directly.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app.Run started")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	if err := a.executor.Open(ctx); err != nil {
		return fmt.Errorf("failed to open graph: %w", err)
	}

	a.logger.Info("starting graph execution", "workers", a.executor.Workers)
	runErr := a.executor.Run(ctx)
	if runErr != nil {
		a.logger.Warn("graph execution ended with error", "error", runErr)
	} else {
		a.logger.Info("graph execution finished")
	}

	if err := a.executor.Close(ctx); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("failed to close graph: %w", err)
		}
	}

	return runErr
}
