package repository

import (
	"fmt"
)

// BuildParseStrategyPrompt builds the instruction prompt that asks the model
// to convert a natural-language strategy request into the JSON template the
// backtest engine needs.
func BuildParseStrategyPrompt(userInput string) string {
	promptTemplate := `[SYSTEM] You are a helpful assistant that converts natural language trading strategy requests into a structured JSON format suitable for the LEAN engine. Focus on extracting key parameters for backtesting.

USER: %s

TEMPLATE: {"action":"backtest", "strategy_details": "<description>", "symbols": ["<symbol1>", "<symbol2>"], "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "strategy_type": "<e.g., mean_reversion, trend_following, custom_indicator>", "parameters": { "<param_name>": "<param_value>" } }

Based *only* on the USER input, fill the TEMPLATE. If a value isn't mentioned, use a reasonable default or leave it empty if appropriate (e.g., end_date can often be omitted).

Example:
USER: Backtest a simple moving average crossover on SPY from 2021-01-01 to 2023-12-31 using 50 and 200 day SMAs.
JSON_OUTPUT: {"action":"backtest", "strategy_details": "simple moving average crossover using 50 and 200 day SMAs", "symbols": ["SPY"], "start_date": "2021-01-01", "end_date": "2023-12-31", "strategy_type": "moving_average_crossover", "parameters": { "short_window": 50, "long_window": 200 } }

Now, process the actual user input:
USER: %s
JSON_OUTPUT:`

	return fmt.Sprintf(promptTemplate, userInput, userInput)
}
