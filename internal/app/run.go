package app

import (
	"context"
	"fmt"

	"github.com/vk/beebsbench/internal/ctxlog"
)

// Run executes the benchmark matrix.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Info("🚀 Starting benchmark run.", "pairs", len(a.plan.Pairs()))
	if err := a.orchestrator.Run(ctx); err != nil {
		a.logger.Error("Benchmark run failed.", "error", err, "log_file", a.sink.Path())
		return fmt.Errorf("benchmark run failed: %w", err)
	}
	a.logger.Info("🏁 Benchmark run finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
