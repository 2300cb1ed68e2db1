package service

import (
	"context"
	"fmt"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/engine"
	"golang-backtest/internal/indicator"
	"golang-backtest/internal/metrics"
	"golang-backtest/internal/model"
	"golang-backtest/internal/repository"
	"golang-backtest/internal/strategy"
	"golang-backtest/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// BacktestService mendefinisikan interface untuk layanan backtesting.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
	RunBatch(ctx context.Context, reqs []dto.BacktestRequest, maxConcurrency int) ([]*dto.BacktestResult, error)
	History(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error)
}

type backtestService struct {
	cfg             *config.Config
	log             *logger.Logger
	candleRepo      repository.CandleRepository
	backtestRunRepo repository.BacktestRunRepository
	geminiAIRepo    repository.AIRepository
}

// NewBacktestService membuat instance baru dari backtestService.
func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	candleRepo repository.CandleRepository,
	backtestRunRepo repository.BacktestRunRepository,
	geminiAIRepo repository.AIRepository,
) BacktestService {
	return &backtestService{
		cfg:             cfg,
		log:             log,
		candleRepo:      candleRepo,
		backtestRunRepo: backtestRunRepo,
		geminiAIRepo:    geminiAIRepo,
	}
}

// RunBacktest menjalankan pipeline lengkap untuk satu simbol:
// ambil data -> hitung indikator -> generate sinyal -> simulasi -> metrik.
func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	stockData, err := s.candleRepo.Get(ctx, dto.GetStockDataParam{
		Symbol:   req.Symbol,
		Range:    req.Range,
		Interval: req.Interval,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get candles for backtest",
			logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return nil, err
	}

	series := stockData.ToBarSeries()
	if err := series.Validate(); err != nil {
		return nil, err
	}

	indicator.Attach(series, indicator.Config{
		RSIPeriod:      s.cfg.Strategy.RSIPeriod,
		SMAShortWindow: s.cfg.Strategy.SMAShortWindow,
		SMALongWindow:  s.cfg.Strategy.SMALongWindow,
		MACDFastPeriod: s.cfg.Strategy.MACDFastPeriod,
		MACDSlowPeriod: s.cfg.Strategy.MACDSlowPeriod,
		MACDSignal:     s.cfg.Strategy.MACDSignal,
	})

	combined, err := strategy.Build(strategy.Config{
		RSIOversold:     s.cfg.Strategy.RSIOversold,
		RSIOverbought:   s.cfg.Strategy.RSIOverbought,
		RSIMode:         strategy.RSIMode(s.cfg.Strategy.RSIMode),
		AggregationMode: dto.AggregationMode(s.cfg.Strategy.AggregationMode),
		EnableRSI:       s.cfg.Strategy.EnableRSI,
		EnableMACD:      s.cfg.Strategy.EnableMACD,
		EnableSMA:       s.cfg.Strategy.EnableSMA,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid strategy config: %w", err)
	}

	signals := strategy.GenerateSignals(series, combined)

	result, err := engine.Run(engine.Config{
		InitialCash:   s.cfg.Backtest.InitialCash,
		CommissionPct: s.cfg.Backtest.CommissionPct,
		SlippagePct:   s.cfg.Backtest.SlippagePct,
	}, series, signals)
	if err != nil {
		s.log.ErrorContext(ctx, "Backtest simulation failed",
			logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return nil, err
	}

	result.Metrics = metrics.Calculate(result, metrics.Config{
		RiskFreeRatePerPeriod: s.cfg.Backtest.RiskFreeRatePerPeriod,
		PeriodsPerYear:        s.cfg.Backtest.PeriodsPerYear,
		ExcludeForcedClose:    s.cfg.Backtest.ExcludeForcedClose,
	})

	if s.geminiAIRepo != nil {
		review, err := s.geminiAIRepo.ReviewBacktest(ctx, result)
		if err != nil {
			// Review hanya pelengkap, kegagalannya tidak membatalkan hasil.
			s.log.WarnContext(ctx, "Failed to get AI review for backtest",
				logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		} else {
			result.AIReview = review
		}
	}

	if s.backtestRunRepo != nil {
		if _, err := s.backtestRunRepo.Save(ctx, req, result); err != nil {
			s.log.WarnContext(ctx, "Failed to persist backtest run",
				logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		}
	}

	s.log.InfoContext(ctx, "Backtest simulation completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("bars", series.Len()),
		logger.IntField("total_trades", result.Metrics.TotalTrades),
		logger.Float64Field("total_return", result.Metrics.TotalReturn))
	return result, nil
}

// RunBatch menjalankan beberapa backtest secara paralel dengan batas
// concurrency. Error pertama membatalkan sisanya.
func (s *backtestService) RunBatch(ctx context.Context, reqs []dto.BacktestRequest, maxConcurrency int) ([]*dto.BacktestResult, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	results := make([]*dto.BacktestResult, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			result, err := s.RunBacktest(gCtx, req)
			if err != nil {
				return fmt.Errorf("backtest %s failed: %w", req.Symbol, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// History mengembalikan riwayat run yang sudah dipersist.
func (s *backtestService) History(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error) {
	if s.backtestRunRepo == nil {
		return nil, fmt.Errorf("backtest history requires a database")
	}
	return s.backtestRunRepo.List(ctx, symbol, limit)
}
