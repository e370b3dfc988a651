package entity

// Default values applied to a StrategyConfig when the language model leaves
// optional fields unset.
const (
	DefaultAction       = "backtest"
	DefaultSymbol       = "SPY"
	DefaultStartDate    = "2020-01-01"
	DefaultStrategyType = "mean_reversion"

	// DefaultAlgorithm is the built-in template used when a parsed strategy
	// carries neither an explicit algorithm path nor a usable strategy type.
	DefaultAlgorithm = "BasicTemplateAlgorithm"
)

// StrategyConfig is the structured form of a natural-language strategy
// description, produced once per request by the strategy parser.
type StrategyConfig struct {
	Action          string                 `json:"action"`
	StrategyDetails string                 `json:"strategy_details"`
	Symbols         []string               `json:"symbols"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date,omitempty"`
	StrategyType    string                 `json:"strategy_type"`
	AlgorithmPath   string                 `json:"algorithm_path,omitempty"`
	Parameters      map[string]interface{} `json:"parameters,omitempty"`
}

// ApplyDefaults fills any unset optional fields with documented defaults.
func (c *StrategyConfig) ApplyDefaults() {
	if c.Action == "" {
		c.Action = DefaultAction
	}
	if len(c.Symbols) == 0 {
		c.Symbols = []string{DefaultSymbol}
	}
	if c.StartDate == "" {
		c.StartDate = DefaultStartDate
	}
	if c.StrategyType == "" {
		c.StrategyType = DefaultStrategyType
	}
}

// ResolveAlgorithm returns the algorithm identifier to hand to the backtest
// engine: the explicit algorithm path when present, else the strategy type,
// else the built-in default template.
func (c *StrategyConfig) ResolveAlgorithm() string {
	if c.AlgorithmPath != "" {
		return c.AlgorithmPath
	}
	if c.StrategyType != "" && c.StrategyType != DefaultStrategyType {
		return c.StrategyType
	}
	return DefaultAlgorithm
}
