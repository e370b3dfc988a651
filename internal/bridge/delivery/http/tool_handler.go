package http

import (
	"errors"
	"net/http"

	"golang-lean-bridge/internal/bridge/dto"
	"golang-lean-bridge/internal/bridge/service"
	"golang-lean-bridge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ToolHandler handles HTTP requests for the tool endpoints.
type ToolHandler struct {
	toolsService service.ToolsService
	logger       *logger.Logger
}

// NewToolHandler creates a new ToolHandler.
func NewToolHandler(toolsService service.ToolsService, logger *logger.Logger) *ToolHandler {
	return &ToolHandler{toolsService: toolsService, logger: logger}
}

// RegisterRoutes registers the tool routes to the Echo group.
func (h *ToolHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/local_backtest_strategy", h.LocalBacktestStrategy)
	g.POST("/cloud_backtest", h.CloudBacktest)
	g.POST("/push_project", h.PushProject)
	g.POST("/cloud_project_status", h.ProjectStatus)
	g.POST("/create_project", h.CreateProject)
	g.POST("/download_market_data", h.DownloadMarketData)
}

// LocalBacktestStrategy runs a local backtest from a natural-language
// strategy description.
func (h *ToolHandler) LocalBacktestStrategy(c echo.Context) error {
	var req dto.LocalBacktestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "strategy_description is required"))
	}

	resp, err := h.toolsService.LocalBacktestStrategy(c.Request().Context(), req.StrategyDescription)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// CloudBacktest pushes a project and submits a cloud backtest.
func (h *ToolHandler) CloudBacktest(c echo.Context) error {
	var req dto.CloudBacktestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "project_name is required"))
	}

	resp, err := h.toolsService.CloudBacktest(c.Request().Context(), &req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// PushProject explicitly syncs local project changes with the cloud.
func (h *ToolHandler) PushProject(c echo.Context) error {
	var req dto.PushProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "project_name is required"))
	}

	resp, err := h.toolsService.PushProject(c.Request().Context(), req.ProjectName)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ProjectStatus reports the cloud status of a project.
func (h *ToolHandler) ProjectStatus(c echo.Context) error {
	var req dto.ProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "project_name is required"))
	}

	resp, err := h.toolsService.ProjectStatus(c.Request().Context(), req.ProjectName)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateProject creates a new cloud project.
func (h *ToolHandler) CreateProject(c echo.Context) error {
	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "project_name is required"))
	}

	resp, err := h.toolsService.CreateProject(c.Request().Context(), &req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// DownloadMarketData is a placeholder endpoint; it always reports the
// capability as unimplemented.
func (h *ToolHandler) DownloadMarketData(c echo.Context) error {
	var req dto.DownloadMarketDataRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", "invalid request payload"))
	}

	err := h.toolsService.DownloadMarketData(c.Request().Context(), &req)
	return h.errorResponse(c, err)
}

// errorResponse converts a service error into the uniform error envelope,
// choosing the HTTP status from the error kind.
func (h *ToolHandler) errorResponse(c echo.Context, err error) error {
	var (
		validationErr     *dto.ValidationError
		parseErr          *dto.ParseError
		externalErr       *dto.ExternalCallError
		notImplementedErr *dto.NotImplementedError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation Error", validationErr.Message))
	case errors.As(err, &parseErr):
		return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Parse Error", parseErr.Message))
	case errors.As(err, &notImplementedErr):
		return c.JSON(http.StatusNotImplemented, dto.NewErrorResponse("Not implemented", notImplementedErr.Error()))
	case errors.As(err, &externalErr):
		return c.JSON(http.StatusBadGateway, dto.NewErrorResponse(externalErr.Context, externalErr.Message))
	default:
		h.logger.Error("Unexpected tool error", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal error", err.Error()))
	}
}
