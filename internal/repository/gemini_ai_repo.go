package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/ratelimit"
	"golang-backtest/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type AIRepository interface {
	ReviewBacktest(ctx context.Context, result *dto.BacktestResult) (string, error)
}

// geminiAIRepository meminta ulasan naratif atas hasil backtest ke
// Google Gemini, dengan rate limit request dan token.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) ReviewBacktest(ctx context.Context, result *dto.BacktestResult) (string, error) {
	prompt := buildReviewPrompt(result)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}
	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for gemini token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for gemini request limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate review from gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return strings.TrimSpace(text), nil
}

func buildReviewPrompt(result *dto.BacktestResult) string {
	var sb strings.Builder
	sb.WriteString("You are a trading performance analyst. Review the following backtest summary ")
	sb.WriteString("and give a short assessment (max 5 sentences) of the strategy's strengths and risks.\n\n")
	sb.WriteString(fmt.Sprintf("Symbol: %s\n", result.Symbol))
	sb.WriteString(fmt.Sprintf("Period: %s to %s\n", result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Total return: %s\n", utils.FormatPercentage(result.Metrics.TotalReturn)))
	sb.WriteString(fmt.Sprintf("Max drawdown: %s\n", utils.FormatPercentage(result.Metrics.MaxDrawdown)))
	sb.WriteString(fmt.Sprintf("Sharpe ratio: %s\n", utils.FormatOptionalFloat(result.Metrics.SharpeRatio, "%.2f")))
	sb.WriteString(fmt.Sprintf("Win rate: %s\n", utils.FormatOptionalFloat(result.Metrics.WinRate, "%.2f")))
	sb.WriteString(fmt.Sprintf("Closed trades: %d\n", result.Metrics.TotalTrades))
	return sb.String()
}
