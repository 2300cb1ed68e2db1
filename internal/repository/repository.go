package repository

import (
	"golang-backtest/config"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
	CandleRepo       CandleRepository
	BacktestRunRepo  BacktestRunRepository
	GeminiAIRepo     AIRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	yahooRepo := NewYahooFinanceRepository(cfg, log)

	var geminiAIRepo AIRepository
	if cfg.Gemini.Enabled {
		repo, err := NewGeminiAIRepository(cfg, log)
		if err != nil {
			return nil, err
		}
		geminiAIRepo = repo
	}

	var backtestRunRepo BacktestRunRepository
	if db != nil {
		backtestRunRepo = NewBacktestRunRepository(db)
	}

	return &Repository{
		YahooFinanceRepo: yahooRepo,
		CandleRepo:       NewCandleRepository(cfg, yahooRepo, inmemoryCache),
		BacktestRunRepo:  backtestRunRepo,
		GeminiAIRepo:     geminiAIRepo,
	}, nil
}
