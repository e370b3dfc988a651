package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := StrategyConfig{StrategyDetails: "RSI below 30 on SPY"}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultAction, cfg.Action)
	assert.Equal(t, []string{DefaultSymbol}, cfg.Symbols)
	assert.Equal(t, DefaultStartDate, cfg.StartDate)
	assert.Equal(t, DefaultStrategyType, cfg.StrategyType)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := StrategyConfig{
		Action:       "backtest",
		Symbols:      []string{"AAPL", "GOOG"},
		StartDate:    "2021-01-01",
		StrategyType: "moving_average_crossover",
	}
	cfg.ApplyDefaults()

	assert.Equal(t, []string{"AAPL", "GOOG"}, cfg.Symbols)
	assert.Equal(t, "2021-01-01", cfg.StartDate)
	assert.Equal(t, "moving_average_crossover", cfg.StrategyType)
}

func TestResolveAlgorithm(t *testing.T) {
	tests := []struct {
		name     string
		cfg      StrategyConfig
		expected string
	}{
		{
			name:     "explicit algorithm path wins",
			cfg:      StrategyConfig{AlgorithmPath: "MyAlgo", StrategyType: "trend_following"},
			expected: "MyAlgo",
		},
		{
			name:     "strategy type used when no path",
			cfg:      StrategyConfig{StrategyType: "trend_following"},
			expected: "trend_following",
		},
		{
			name:     "defaulted strategy type falls back to template",
			cfg:      StrategyConfig{StrategyType: DefaultStrategyType},
			expected: DefaultAlgorithm,
		},
		{
			name:     "empty config falls back to template",
			cfg:      StrategyConfig{},
			expected: DefaultAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.ResolveAlgorithm())
		})
	}
}
