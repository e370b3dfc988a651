package http

import (
	"net/http"

	"golang-lean-bridge/internal/bridge/service"
	"golang-lean-bridge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResourceHandler handles HTTP requests for the read-only resource
// endpoints.
type ResourceHandler struct {
	resourcesService service.ResourcesService
	logger           *logger.Logger
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourcesService service.ResourcesService, logger *logger.Logger) *ResourceHandler {
	return &ResourceHandler{resourcesService: resourcesService, logger: logger}
}

// RegisterRoutes registers the resource routes to the Echo group.
func (h *ResourceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cloud_projects", h.CloudProjects)
	g.GET("/risk_parameters", h.RiskParameters)
}

// CloudProjects returns the (placeholder) cloud project listing.
func (h *ResourceHandler) CloudProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resourcesService.CloudProjects(c.Request().Context()))
}

// RiskParameters returns the risk settings loaded at startup.
func (h *ResourceHandler) RiskParameters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resourcesService.RiskParameters())
}
