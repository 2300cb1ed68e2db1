package service

import (
	"golang-backtest/config"
	"golang-backtest/internal/repository"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/telegram"
)

type Service struct {
	BacktestService  BacktestService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier *telegram.Notifier,
) *Service {
	backtestService := NewBacktestService(cfg, log, repo.CandleRepo, repo.BacktestRunRepo, repo.GeminiAIRepo)
	schedulerService := NewSchedulerService(cfg, log, backtestService, notifier)

	return &Service{
		BacktestService:  backtestService,
		SchedulerService: schedulerService,
	}
}
