package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeYahooRepository struct {
	calls int
	data  *dto.StockData
	err   error
}

func (r *fakeYahooRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.data, nil
}

func testCandleConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{CandleExpiration: time.Minute},
	}
}

func TestCandleRepository_CachesBySymbolRangeInterval(t *testing.T) {
	yahoo := &fakeYahooRepository{data: &dto.StockData{Symbol: "BBCA.JK"}}
	c := cache.NewCache(time.Minute, time.Minute)
	c.Flush()
	repo := NewCandleRepository(testCandleConfig(), yahoo, c)

	param := dto.GetStockDataParam{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"}

	first, err := repo.Get(context.Background(), param)
	require.NoError(t, err)
	second, err := repo.Get(context.Background(), param)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, yahoo.calls)

	// Interval berbeda tidak boleh pakai entry yang sama.
	_, err = repo.Get(context.Background(), dto.GetStockDataParam{Symbol: "BBCA.JK", Range: "1y", Interval: "1wk"})
	require.NoError(t, err)
	assert.Equal(t, 2, yahoo.calls)
}

func TestCandleRepository_DoesNotCacheErrors(t *testing.T) {
	yahoo := &fakeYahooRepository{err: fmt.Errorf("%w: empty chart response", dto.ErrInsufficientData)}
	c := cache.NewCache(time.Minute, time.Minute)
	c.Flush()
	repo := NewCandleRepository(testCandleConfig(), yahoo, c)

	param := dto.GetStockDataParam{Symbol: "XXXX.JK", Range: "1y", Interval: "1d"}

	_, err := repo.Get(context.Background(), param)
	require.ErrorIs(t, err, dto.ErrInsufficientData)

	_, err = repo.Get(context.Background(), param)
	require.ErrorIs(t, err, dto.ErrInsufficientData)
	assert.Equal(t, 2, yahoo.calls)
}
