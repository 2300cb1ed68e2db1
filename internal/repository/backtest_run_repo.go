package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-backtest/internal/dto"
	"golang-backtest/internal/model"

	"gorm.io/gorm"
)

type BacktestRunRepository interface {
	Save(ctx context.Context, req dto.BacktestRequest, result *dto.BacktestResult) (*model.BacktestRun, error)
	List(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

// Save mempersist satu hasil backtest sebagai baris riwayat.
func (r *backtestRunRepository) Save(ctx context.Context, req dto.BacktestRequest, result *dto.BacktestResult) (*model.BacktestRun, error) {
	tradesJSON, err := json.Marshal(result.Trades)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trades: %w", err)
	}
	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}

	run := &model.BacktestRun{
		Symbol:      result.Symbol,
		Range:       req.Range,
		Interval:    req.Interval,
		StartDate:   result.StartDate,
		EndDate:     result.EndDate,
		InitialCash: result.InitialCash,
		FinalEquity: result.FinalEquity,
		TotalReturn: result.Metrics.TotalReturn,
		MaxDrawdown: result.Metrics.MaxDrawdown,
		SharpeRatio: result.Metrics.SharpeRatio,
		WinRate:     result.Metrics.WinRate,
		TotalTrades: result.Metrics.TotalTrades,
		Trades:      tradesJSON,
		Metrics:     metricsJSON,
		AIReview:    result.AIReview,
	}

	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to save backtest run: %w", err)
	}
	return run, nil
}

// List mengembalikan riwayat run terbaru, opsional difilter per simbol.
func (r *backtestRunRepository) List(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var runs []model.BacktestRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list backtest runs: %w", err)
	}
	return runs, nil
}
