package service

import (
	"context"
	"fmt"
	"regexp"

	"golang-lean-bridge/internal/bridge/dto"
	"golang-lean-bridge/internal/bridge/repository"
	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/logger"
	"golang-lean-bridge/pkg/telegram"

	"github.com/google/uuid"
)

// backtestIDPattern matches the id the LEAN CLI prints after submitting a
// cloud backtest, e.g. "... with backtestId 1a2b3c" or "BacktestId: 1a2b3c".
var backtestIDPattern = regexp.MustCompile(`(?:backtestId|BacktestId)[:\s]+(\S+)`)

// ToolsService exposes the named tool operations of the bridge.
type ToolsService interface {
	LocalBacktestStrategy(ctx context.Context, description string) (*dto.LocalBacktestResponse, error)
	CloudBacktest(ctx context.Context, req *dto.CloudBacktestRequest) (*dto.CloudBacktestResponse, error)
	PushProject(ctx context.Context, projectName string) (*dto.ExecutionResponse, error)
	ProjectStatus(ctx context.Context, projectName string) (*dto.ExecutionResponse, error)
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ExecutionResponse, error)
	DownloadMarketData(ctx context.Context, req *dto.DownloadMarketDataRequest) error
}

// NewToolsService creates a new tools service.
func NewToolsService(
	parser repository.StrategyParser,
	localRepo repository.LeanLocalRepository,
	cloudRepo repository.LeanCloudRepository,
	riskSettings *entity.RiskSettings,
	notifier telegram.Notifier,
	log *logger.Logger,
) ToolsService {
	return &toolsService{
		parser:       parser,
		localRepo:    localRepo,
		cloudRepo:    cloudRepo,
		riskSettings: riskSettings,
		notifier:     notifier,
		logger:       log,
	}
}

type toolsService struct {
	parser       repository.StrategyParser
	localRepo    repository.LeanLocalRepository
	cloudRepo    repository.LeanCloudRepository
	riskSettings *entity.RiskSettings
	notifier     telegram.Notifier
	logger       *logger.Logger
}

// LocalBacktestStrategy parses the free-text description, resolves the
// algorithm identifier and runs a local LEAN backtest.
func (s *toolsService) LocalBacktestStrategy(ctx context.Context, description string) (*dto.LocalBacktestResponse, error) {
	strategyCfg, err := s.parser.Parse(ctx, description)
	if err != nil {
		return nil, err
	}

	algorithm := strategyCfg.ResolveAlgorithm()
	s.logger.Info("Resolved algorithm for local backtest",
		logger.StringField("algorithm", algorithm),
		logger.StringField("strategy_type", strategyCfg.StrategyType),
	)

	result := s.localRepo.Backtest(ctx, algorithm)

	resp := &dto.LocalBacktestResponse{Status: dto.StatusError, Details: result.Error}
	if result.Success {
		resp.Status = dto.StatusSuccess
		resp.Details = result.Output
	} else if resp.Details == "" {
		resp.Details = result.Output
	}
	return resp, nil
}

// CloudBacktest validates strategy parameters against the risk allow-list,
// pushes the project and submits a cloud backtest. A push failure
// short-circuits the submission.
func (s *toolsService) CloudBacktest(ctx context.Context, req *dto.CloudBacktestRequest) (*dto.CloudBacktestResponse, error) {
	if symbol, ok := req.StrategyParameters["symbol"]; ok {
		symbolStr, isString := symbol.(string)
		if !isString || !s.riskSettings.Allows(symbolStr) {
			return nil, dto.NewValidationError("symbol %v is not permitted by the current risk settings", symbol)
		}
	} else {
		s.logger.Warn("No symbol provided in strategy parameters, skipping allow-list check",
			logger.StringField("project", req.ProjectName))
	}

	pushResult := s.cloudRepo.PushChanges(ctx, req.ProjectName)
	if !pushResult.Success {
		detail := pushResult.Error
		if pushResult.Output != "" {
			detail = fmt.Sprintf("%s | output: %s", detail, truncate(pushResult.Output, 200))
		}
		return nil, &dto.ExternalCallError{Context: "Push failed", Message: detail}
	}

	backtestName := req.BacktestName
	if backtestName == "" {
		backtestName = fmt.Sprintf("nl-bridge-%s", uuid.NewString()[:8])
	}

	btResult := s.cloudRepo.SubmitBacktest(ctx, req.ProjectName, backtestName)

	resp := &dto.CloudBacktestResponse{
		Status:  dto.StatusError,
		Details: btResult,
	}
	if btResult.Success {
		resp.Status = dto.StatusSuccess
		if id := extractBacktestID(btResult.Output); id != "" {
			resp.BacktestID = &id
		} else {
			s.logger.Warn("Could not extract backtest id from CLI output",
				logger.StringField("output", truncate(btResult.Output, 200)))
		}
		s.notifySubmission(req.ProjectName, backtestName, resp.BacktestID)
	}
	return resp, nil
}

// PushProject explicitly pushes project changes to the cloud.
func (s *toolsService) PushProject(ctx context.Context, projectName string) (*dto.ExecutionResponse, error) {
	result := s.cloudRepo.PushChanges(ctx, projectName)
	return dto.NewExecutionResponse(result), nil
}

// ProjectStatus reports the cloud status of a project.
func (s *toolsService) ProjectStatus(ctx context.Context, projectName string) (*dto.ExecutionResponse, error) {
	result := s.cloudRepo.ProjectStatus(ctx, projectName)
	return dto.NewExecutionResponse(result), nil
}

// CreateProject creates a new cloud project.
func (s *toolsService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ExecutionResponse, error) {
	result := s.cloudRepo.CreateProject(ctx, req.ProjectName, req.Language)
	return dto.NewExecutionResponse(result), nil
}

// DownloadMarketData is a placeholder; it always reports the capability as
// unimplemented and never fabricates data.
func (s *toolsService) DownloadMarketData(ctx context.Context, req *dto.DownloadMarketDataRequest) error {
	return &dto.NotImplementedError{Capability: "market data download"}
}

func (s *toolsService) notifySubmission(projectName, backtestName string, backtestID *string) {
	if s.notifier == nil {
		return
	}
	id := "unknown"
	if backtestID != nil {
		id = *backtestID
	}
	msg := fmt.Sprintf("Cloud backtest *%s* submitted for project *%s* (id: `%s`)", backtestName, projectName, id)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send backtest notification", logger.ErrorField(err))
	}
}

func extractBacktestID(cliOutput string) string {
	match := backtestIDPattern.FindStringSubmatch(cliOutput)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
