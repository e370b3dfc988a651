package service

import (
	"context"

	"golang-lean-bridge/internal/bridge/dto"
	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/logger"
)

// ResourcesService exposes the read-only resource endpoints of the bridge.
type ResourcesService interface {
	CloudProjects(ctx context.Context) *dto.CloudProjectsResponse
	RiskParameters() *entity.RiskSettings
}

// NewResourcesService creates a new resources service.
func NewResourcesService(riskSettings *entity.RiskSettings, log *logger.Logger) ResourcesService {
	return &resourcesService{
		riskSettings: riskSettings,
		logger:       log,
	}
}

type resourcesService struct {
	riskSettings *entity.RiskSettings
	logger       *logger.Logger
}

// CloudProjects is a placeholder: listing projects needs the QuantConnect
// web API, which is not wired up yet. The listing is always empty and
// labeled as such.
func (s *resourcesService) CloudProjects(ctx context.Context) *dto.CloudProjectsResponse {
	return &dto.CloudProjectsResponse{
		Status:   dto.StatusError,
		Message:  "cloud project listing is not implemented",
		Projects: []string{},
	}
}

// RiskParameters returns the risk settings loaded at startup.
func (s *resourcesService) RiskParameters() *entity.RiskSettings {
	return s.riskSettings
}
