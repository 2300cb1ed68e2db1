package repository

import (
	"context"
	"fmt"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/cache"
)

type CandleRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
}

// candleRepository menempatkan cache in-memory di depan sumber data
// supaya backtest berulang pada simbol yang sama tidak memukul API terus.
type candleRepository struct {
	cfg           *config.Config
	yahooRepo     YahooFinanceRepository
	inmemoryCache cache.Cache
}

func NewCandleRepository(cfg *config.Config, yahooRepo YahooFinanceRepository, inmemoryCache cache.Cache) CandleRepository {
	return &candleRepository{
		cfg:           cfg,
		yahooRepo:     yahooRepo,
		inmemoryCache: inmemoryCache,
	}
}

func (r *candleRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	key := candleCacheKey(param)
	if data, ok := cache.GetTyped[*dto.StockData](r.inmemoryCache, key); ok {
		return data, nil
	}

	data, err := r.yahooRepo.Get(ctx, param)
	if err != nil {
		return nil, err
	}

	r.inmemoryCache.Set(key, data, r.cfg.Cache.CandleExpiration)
	return data, nil
}

func candleCacheKey(param dto.GetStockDataParam) string {
	return fmt.Sprintf("candles:%s:%s:%s", param.Symbol, param.Range, param.Interval)
}
