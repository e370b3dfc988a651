package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "plain object",
			input:    `{"action":"backtest"}`,
			expected: `{"action":"backtest"}`,
		},
		{
			name: "fenced json block",
			input: "```json\n" + `{"action":"backtest","symbols":["SPY"]}` + "\n```",
			expected: `{"action":"backtest","symbols":["SPY"]}`,
		},
		{
			name:     "object wrapped in prose",
			input:    `Here is the configuration you asked for: {"action":"backtest"} hope it helps!`,
			expected: `{"action":"backtest"}`,
		},
		{
			name:    "no object at all",
			input:   "this completion contains no json",
			wantErr: true,
		},
		{
			name:    "braces but invalid json",
			input:   `prefix {action: backtest} suffix`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
