package entity

import (
	"encoding/json"
	"fmt"
	"os"
)

// RiskSettings holds the static risk limits and the symbol allow-list.
// It is loaded once at startup and is read-only for the process lifetime.
type RiskSettings struct {
	MaxPositionSize          float64  `json:"max_position_size"`
	MaxDrawdownPercent       float64  `json:"max_drawdown_percent"`
	AllowedSymbols           []string `json:"allowed_symbols"`
	DefaultStopLossPercent   float64  `json:"default_stop_loss_percent"`
	DefaultTakeProfitPercent float64  `json:"default_take_profit_percent"`
	MaxTradesPerDay          int      `json:"max_trades_per_day"`
}

// LoadRiskSettings reads risk settings from the JSON file at path.
func LoadRiskSettings(path string) (*RiskSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk settings file: %w", err)
	}

	var settings RiskSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse risk settings file: %w", err)
	}

	return &settings, nil
}

// Allows reports whether the symbol is a non-empty, case-sensitive exact
// match against the allow-list.
func (r *RiskSettings) Allows(symbol string) bool {
	if symbol == "" {
		return false
	}
	for _, allowed := range r.AllowedSymbols {
		if symbol == allowed {
			return true
		}
	}
	return false
}
