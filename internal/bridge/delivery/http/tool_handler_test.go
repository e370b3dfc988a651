package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-lean-bridge/internal/bridge/dto"
	"golang-lean-bridge/internal/bridge/service"
	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/execkit"
	"golang-lean-bridge/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolsService returns canned responses for handler tests.
type fakeToolsService struct {
	localResp *dto.LocalBacktestResponse
	cloudResp *dto.CloudBacktestResponse
	err       error
}

func (f *fakeToolsService) LocalBacktestStrategy(_ context.Context, _ string) (*dto.LocalBacktestResponse, error) {
	return f.localResp, f.err
}

func (f *fakeToolsService) CloudBacktest(_ context.Context, _ *dto.CloudBacktestRequest) (*dto.CloudBacktestResponse, error) {
	return f.cloudResp, f.err
}

func (f *fakeToolsService) PushProject(_ context.Context, _ string) (*dto.ExecutionResponse, error) {
	return dto.NewExecutionResponse(execkit.ExecutionResult{Success: true, Output: "pushed"}), f.err
}

func (f *fakeToolsService) ProjectStatus(_ context.Context, _ string) (*dto.ExecutionResponse, error) {
	return dto.NewExecutionResponse(execkit.ExecutionResult{Success: true, Output: "In sync"}), f.err
}

func (f *fakeToolsService) CreateProject(_ context.Context, _ *dto.CreateProjectRequest) (*dto.ExecutionResponse, error) {
	return dto.NewExecutionResponse(execkit.ExecutionResult{Success: true}), f.err
}

func (f *fakeToolsService) DownloadMarketData(_ context.Context, _ *dto.DownloadMarketDataRequest) error {
	return &dto.NotImplementedError{Capability: "market data download"}
}

func newTestEcho(t *testing.T, svc service.ToolsService) *echo.Echo {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	e := echo.New()
	e.Validator = NewRequestValidator()
	NewToolHandler(svc, log).RegisterRoutes(e.Group("/tools"))

	resources := service.NewResourcesService(
		&entity.RiskSettings{AllowedSymbols: []string{"SPY", "QQQ"}, MaxTradesPerDay: 20},
		log,
	)
	NewResourceHandler(resources, log).RegisterRoutes(e.Group("/resources"))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLocalBacktestStrategyHandler(t *testing.T) {
	svc := &fakeToolsService{
		localResp: &dto.LocalBacktestResponse{Status: dto.StatusSuccess, Details: "backtest complete"},
	}
	e := newTestEcho(t, svc)

	rec := doJSON(e, http.MethodPost, "/tools/local_backtest_strategy",
		`{"strategy_description": "Run basic template algorithm"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LocalBacktestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	assert.Equal(t, "backtest complete", resp.Details)
}

func TestLocalBacktestStrategyMissingDescription(t *testing.T) {
	e := newTestEcho(t, &fakeToolsService{})

	rec := doJSON(e, http.MethodPost, "/tools/local_backtest_strategy", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.StatusError, resp.Status)
	assert.Equal(t, "Validation Error", resp.Context)
}

func TestCloudBacktestHandler(t *testing.T) {
	id := "BT-12345"
	svc := &fakeToolsService{
		cloudResp: &dto.CloudBacktestResponse{
			Status:     dto.StatusSuccess,
			BacktestID: &id,
			Details:    execkit.ExecutionResult{Success: true, Output: "submitted"},
		},
	}
	e := newTestEcho(t, svc)

	rec := doJSON(e, http.MethodPost, "/tools/cloud_backtest",
		`{"project_name": "SPY Momentum", "strategy_parameters": {"symbol": "SPY"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CloudBacktestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.BacktestID)
	assert.Equal(t, "BT-12345", *resp.BacktestID)
}

func TestCloudBacktestValidationErrorEnvelope(t *testing.T) {
	svc := &fakeToolsService{err: dto.NewValidationError("symbol TSLA is not permitted by the current risk settings")}
	e := newTestEcho(t, svc)

	rec := doJSON(e, http.MethodPost, "/tools/cloud_backtest",
		`{"project_name": "Bad Project", "strategy_parameters": {"symbol": "TSLA"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation Error", resp.Context)
	assert.Contains(t, resp.Message, "TSLA")
	assert.NotEmpty(t, resp.Timestamp)
}

func TestCloudBacktestPushFailureEnvelope(t *testing.T) {
	svc := &fakeToolsService{err: &dto.ExternalCallError{Context: "Push failed", Message: "permissions"}}
	e := newTestEcho(t, svc)

	rec := doJSON(e, http.MethodPost, "/tools/cloud_backtest",
		`{"project_name": "FailPush Project"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Push failed", resp.Context)
}

func TestDownloadMarketDataAlwaysNotImplemented(t *testing.T) {
	e := newTestEcho(t, &fakeToolsService{})

	rec := doJSON(e, http.MethodPost, "/tools/download_market_data",
		`{"symbol": "SPY", "resolution": "daily"}`)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "not implemented")
}

func TestRiskParametersResource(t *testing.T) {
	e := newTestEcho(t, &fakeToolsService{})

	rec := doJSON(e, http.MethodGet, "/resources/risk_parameters", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var settings entity.RiskSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, []string{"SPY", "QQQ"}, settings.AllowedSymbols)
	assert.Equal(t, 20, settings.MaxTradesPerDay)
}

func TestCloudProjectsResource(t *testing.T) {
	e := newTestEcho(t, &fakeToolsService{})

	rec := doJSON(e, http.MethodGet, "/resources/cloud_projects", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CloudProjectsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.StatusError, resp.Status)
	assert.Empty(t, resp.Projects)
}
