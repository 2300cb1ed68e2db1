package service

import (
	"context"
	"fmt"
	"strings"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/telegram"
	"golang-backtest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService menjalankan backtest berkala untuk daftar simbol yang
// dikonfigurasi dan mengirim ringkasannya lewat Telegram.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg             *config.Config
	log             *logger.Logger
	backtestService BacktestService
	notifier        *telegram.Notifier
	cron            *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	backtestService BacktestService,
	notifier *telegram.Notifier,
) SchedulerService {
	return &schedulerService{
		cfg:             cfg,
		log:             log,
		backtestService: backtestService,
		notifier:        notifier,
		cron:            cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("Scheduler disabled, skipping")
		return nil
	}
	if len(s.cfg.Scheduler.Symbols) == 0 {
		return fmt.Errorf("scheduler enabled but no symbols configured")
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronExpression, func() {
		utils.GoSafe(func() {
			s.runScheduledBacktests(ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to register scheduled backtest: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.CronExpression),
		logger.IntField("symbols", len(s.cfg.Scheduler.Symbols)))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *schedulerService) runScheduledBacktests(ctx context.Context) {
	reqs := make([]dto.BacktestRequest, 0, len(s.cfg.Scheduler.Symbols))
	for _, symbol := range s.cfg.Scheduler.Symbols {
		reqs = append(reqs, dto.BacktestRequest{
			Symbol:   symbol,
			Range:    s.cfg.Scheduler.Range,
			Interval: s.cfg.Scheduler.Interval,
		})
	}

	results, err := s.backtestService.RunBatch(ctx, reqs, s.cfg.Scheduler.MaxConcurrency)
	if err != nil {
		s.log.ErrorContext(ctx, "Scheduled backtest batch failed", logger.ErrorField(err))
		return
	}

	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(ctx, formatBatchSummary(results)); err != nil {
		s.log.ErrorContext(ctx, "Failed to send scheduled backtest summary", logger.ErrorField(err))
	}
}

// formatBatchSummary membuat ringkasan satu baris per simbol.
func formatBatchSummary(results []*dto.BacktestResult) string {
	var sb strings.Builder
	sb.WriteString("*Scheduled Backtest Summary*\n\n")
	for _, r := range results {
		if r == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: return %s, drawdown %s, trades %d, sharpe %s\n",
			r.Symbol,
			utils.FormatPercentage(r.Metrics.TotalReturn),
			utils.FormatPercentage(r.Metrics.MaxDrawdown),
			r.Metrics.TotalTrades,
			utils.FormatOptionalFloat(r.Metrics.SharpeRatio, "%.2f"),
		))
	}
	return sb.String()
}
