package repository

import (
	"context"

	"golang-lean-bridge/internal/bridge/config"
	"golang-lean-bridge/pkg/execkit"
	"golang-lean-bridge/pkg/logger"
)

// leanCloudRepository drives the QuantConnect Cloud subcommands of the LEAN
// CLI. All arguments are passed as argv elements, never through a shell, so
// project names with spaces or metacharacters stay literal.
type leanCloudRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	runner execkit.Runner
}

// NewLeanCloudRepository creates a new instance of leanCloudRepository.
func NewLeanCloudRepository(cfg *config.Config, log *logger.Logger, runner execkit.Runner) LeanCloudRepository {
	return &leanCloudRepository{
		cfg:    cfg,
		logger: log,
		runner: runner,
	}
}

// PushChanges pushes local project changes to QuantConnect Cloud. Required
// before running cloud backtests on updated code.
func (r *leanCloudRepository) PushChanges(ctx context.Context, projectName string) execkit.ExecutionResult {
	r.logger.Info("Pushing project to cloud", logger.StringField("project", projectName))
	return r.runner.Run(ctx, r.cfg.Lean.Binary, "cloud", "push", "--project", projectName)
}

// SubmitBacktest submits a cloud backtest for the project. The call
// initiates the backtest; it does not wait for completion. The CLI output
// usually carries the backtest id for later retrieval.
func (r *leanCloudRepository) SubmitBacktest(ctx context.Context, projectName, backtestName string) execkit.ExecutionResult {
	args := []string{"cloud", "backtest", projectName}
	if backtestName != "" {
		args = append(args, "--backtest-name", backtestName)
	}
	r.logger.Info("Submitting cloud backtest",
		logger.StringField("project", projectName),
		logger.StringField("backtest_name", backtestName),
	)
	return r.runner.Run(ctx, r.cfg.Lean.Binary, args...)
}

// GetBacktestResults is not implemented: the LEAN CLI has no verified
// command for fetching a specific backtest's results, so this always
// returns a deterministic failure instead of pretending to succeed.
func (r *leanCloudRepository) GetBacktestResults(ctx context.Context, projectName, backtestID string) execkit.ExecutionResult {
	r.logger.Warn("Backtest result retrieval requested but not implemented",
		logger.StringField("project", projectName),
		logger.StringField("backtest_id", backtestID),
	)
	return execkit.ExecutionResult{
		Success:    false,
		Error:      "fetching specific backtest results via CLI is not implemented",
		ReturnCode: -1,
	}
}

// ProjectStatus reports the current status of a cloud project.
func (r *leanCloudRepository) ProjectStatus(ctx context.Context, projectName string) execkit.ExecutionResult {
	return r.runner.Run(ctx, r.cfg.Lean.Binary, "cloud", "status", projectName)
}

// CreateProject creates a new project in QuantConnect Cloud.
func (r *leanCloudRepository) CreateProject(ctx context.Context, projectName, language string) execkit.ExecutionResult {
	if language == "" {
		language = "python"
	}
	return r.runner.Run(ctx, r.cfg.Lean.Binary, "project-create", projectName, "--language", language)
}
