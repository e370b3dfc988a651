package dto

import (
	"time"

	"golang-lean-bridge/pkg/execkit"
)

// Tool response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// LocalBacktestRequest is the payload for the local_backtest_strategy tool.
type LocalBacktestRequest struct {
	StrategyDescription string `json:"strategy_description" validate:"required"`
}

// LocalBacktestResponse is the envelope for a local backtest outcome.
type LocalBacktestResponse struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// CloudBacktestRequest is the payload for the cloud_backtest tool.
type CloudBacktestRequest struct {
	ProjectName        string                 `json:"project_name" validate:"required"`
	StrategyParameters map[string]interface{} `json:"strategy_parameters"`
	BacktestName       string                 `json:"backtest_name,omitempty"`
}

// CloudBacktestResponse is the envelope for a cloud backtest submission.
// BacktestID is null when no identifier could be extracted from the CLI
// output; that alone does not make the submission an error.
type CloudBacktestResponse struct {
	Status     string                  `json:"status"`
	BacktestID *string                 `json:"backtest_id"`
	Details    execkit.ExecutionResult `json:"details"`
}

// PushProjectRequest is the payload for the push_project tool.
type PushProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required"`
}

// ProjectStatusRequest is the payload for the cloud_project_status tool.
type ProjectStatusRequest struct {
	ProjectName string `json:"project_name" validate:"required"`
}

// CreateProjectRequest is the payload for the create_project tool.
type CreateProjectRequest struct {
	ProjectName string `json:"project_name" validate:"required"`
	Language    string `json:"language,omitempty"`
}

// ExecutionResponse wraps a raw subprocess result for pass-through tools.
type ExecutionResponse struct {
	Status  string                  `json:"status"`
	Details execkit.ExecutionResult `json:"details"`
}

// NewExecutionResponse derives the envelope status from the result.
func NewExecutionResponse(result execkit.ExecutionResult) *ExecutionResponse {
	status := StatusError
	if result.Success {
		status = StatusSuccess
	}
	return &ExecutionResponse{Status: status, Details: result}
}

// DownloadMarketDataRequest is the payload for the download_market_data
// placeholder tool. Fields are accepted but never acted on.
type DownloadMarketDataRequest struct {
	Symbol     string `json:"symbol,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// CloudProjectsResponse is the placeholder listing of cloud projects.
type CloudProjectsResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Projects []string `json:"projects"`
}

// ErrorResponse is the uniform error envelope for all tools.
type ErrorResponse struct {
	Status    string `json:"status"`
	Context   string `json:"context"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewErrorResponse builds an error envelope with a UTC timestamp.
func NewErrorResponse(context, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:    StatusError,
		Context:   context,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
