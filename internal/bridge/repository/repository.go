package repository

import (
	"context"

	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/execkit"
)

// StrategyParser converts a natural-language strategy description into a
// structured StrategyConfig.
type StrategyParser interface {
	Parse(ctx context.Context, description string) (*entity.StrategyConfig, error)
}

// LeanLocalRepository runs backtests against the locally installed LEAN CLI.
type LeanLocalRepository interface {
	Backtest(ctx context.Context, algorithm string) execkit.ExecutionResult
}

// LeanCloudRepository drives the cloud subcommands of the LEAN CLI.
type LeanCloudRepository interface {
	PushChanges(ctx context.Context, projectName string) execkit.ExecutionResult
	SubmitBacktest(ctx context.Context, projectName, backtestName string) execkit.ExecutionResult
	GetBacktestResults(ctx context.Context, projectName, backtestID string) execkit.ExecutionResult
	ProjectStatus(ctx context.Context, projectName string) execkit.ExecutionResult
	CreateProject(ctx context.Context, projectName, language string) execkit.ExecutionResult
}
