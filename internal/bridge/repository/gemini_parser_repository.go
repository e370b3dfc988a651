package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-lean-bridge/internal/bridge/config"
	"golang-lean-bridge/internal/bridge/dto"
	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/logger"
	"golang-lean-bridge/pkg/ratelimit"
	"golang-lean-bridge/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiParserRepository is an implementation of StrategyParser that uses
// the Google Gemini API.
type geminiParserRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
	cache          *gocache.Cache
}

// NewGeminiParserRepository creates a new instance of geminiParserRepository.
// genAiClient may be nil; token counting is skipped without it.
func NewGeminiParserRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (StrategyParser, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	cacheTTL := cfg.Parser.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &geminiParserRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
		cache:          gocache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// Parse converts a natural-language strategy description into a
// StrategyConfig, serving repeated identical descriptions from cache.
func (r *geminiParserRepository) Parse(ctx context.Context, description string) (*entity.StrategyConfig, error) {
	if description == "" {
		return nil, dto.NewValidationError("strategy description must not be empty")
	}

	if cached, found := r.cache.Get(description); found {
		cfg := cached.(entity.StrategyConfig)
		return &cfg, nil
	}

	prompt := BuildParseStrategyPrompt(description)

	geminiResp, err := r.executeGeminiRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	strategyCfg, err := r.parseStrategyResponse(geminiResp)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(description, *strategyCfg)

	return strategyCfg, nil
}

func (r *geminiParserRepository) executeGeminiRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	if r.genAiClient != nil {
		contents := []*genai.Content{
			genai.NewContentFromText(prompt, "user"),
		}
		geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
		if err != nil {
			return nil, &dto.ExternalCallError{Context: "Gemini API", Message: "failed to count tokens", Err: err}
		}

		r.logger.Debug("Gemini token count",
			logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
			logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
		)

		if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
			return nil, &dto.ExternalCallError{Context: "Gemini API", Message: "failed to wait for token limit", Err: err}
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, &dto.ExternalCallError{Context: "Gemini API", Message: "failed to wait for request limit", Err: err}
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal payload", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		r.logger.Error("Failed to create new http request", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return nil, &dto.ExternalCallError{Context: "Gemini API", Message: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return nil, &dto.ExternalCallError{
			Context: "Gemini API",
			Message: fmt.Sprintf("received non-OK response: %d - %s", resp.StatusCode, string(body)),
		}
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		r.logger.Error("Failed to decode response body", logger.ErrorField(err))
		return nil, &dto.ExternalCallError{Context: "Gemini API", Message: "failed to decode response body", Err: err}
	}

	return &geminiResp, nil
}

func (r *geminiParserRepository) parseStrategyResponse(resp *dto.GeminiAPIResponse) (*entity.StrategyConfig, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &dto.ParseError{Message: "invalid response from Gemini API: no content found"}
	}

	rawText := resp.Candidates[0].Content.Parts[0].Text
	jsonString, err := utils.ExtractJSONObject(rawText)
	if err != nil {
		r.logger.Warn("No JSON object in Gemini response", logger.StringField("raw", rawText))
		return nil, &dto.ParseError{Message: "failed to extract JSON object from Gemini response", Raw: rawText}
	}

	var strategyCfg entity.StrategyConfig
	if err := json.Unmarshal([]byte(jsonString), &strategyCfg); err != nil {
		return nil, &dto.ParseError{Message: fmt.Sprintf("failed to unmarshal strategy config: %v", err), Raw: rawText}
	}

	strategyCfg.ApplyDefaults()

	if strategyCfg.Action != entity.DefaultAction {
		return nil, dto.NewValidationError("unsupported action %q in parsed strategy config", strategyCfg.Action)
	}

	return &strategyCfg, nil
}
