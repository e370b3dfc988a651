package repository

import (
	"context"

	"golang-lean-bridge/internal/bridge/config"
	"golang-lean-bridge/pkg/execkit"
	"golang-lean-bridge/pkg/logger"
)

// leanCLIRepository runs backtests through the locally installed LEAN CLI.
type leanCLIRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	runner execkit.Runner
}

// NewLeanCLIRepository creates a new instance of leanCLIRepository.
func NewLeanCLIRepository(cfg *config.Config, log *logger.Logger, runner execkit.Runner) LeanLocalRepository {
	return &leanCLIRepository{
		cfg:    cfg,
		logger: log,
		runner: runner,
	}
}

// Backtest runs `lean backtest <algorithm>` and captures its outcome.
// Partial output is not streamed; the caller gets the full result once the
// process exits.
func (r *leanCLIRepository) Backtest(ctx context.Context, algorithm string) execkit.ExecutionResult {
	r.logger.Info("Starting local backtest", logger.StringField("algorithm", algorithm))
	return r.runner.Run(ctx, r.cfg.Lean.Binary, "backtest", algorithm)
}
