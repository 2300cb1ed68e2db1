package service

import (
	"context"
	"fmt"
	"testing"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCandleRepository mengembalikan data sintetis tanpa memukul API.
type fakeCandleRepository struct {
	data *dto.StockData
	err  error
}

func (r *fakeCandleRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.data, nil
}

type fakeAIRepository struct {
	review string
	err    error
}

func (r *fakeAIRepository) ReviewBacktest(ctx context.Context, result *dto.BacktestResult) (string, error) {
	return r.review, r.err
}

func testConfig() *config.Config {
	return &config.Config{
		Backtest: config.Backtest{
			InitialCash:    10000,
			PeriodsPerYear: 252,
		},
		Strategy: config.Strategy{
			RSIOversold:     30,
			RSIOverbought:   70,
			RSIMode:         "threshold",
			RSIPeriod:       3,
			SMAShortWindow:  2,
			SMALongWindow:   4,
			MACDFastPeriod:  3,
			MACDSlowPeriod:  6,
			MACDSignal:      4,
			AggregationMode: "any",
			EnableSMA:       true,
		},
	}
}

// syntheticStockData membangun harga zig-zag panjang supaya SMA crossover
// benar-benar menghasilkan trade.
func syntheticStockData(symbol string, n int) *dto.StockData {
	data := &dto.StockData{Symbol: symbol, Range: "1y", Interval: "1d"}
	price := 100.0
	for i := 0; i < n; i++ {
		// 10 bar naik, 10 bar turun, berulang.
		if (i/10)%2 == 0 {
			price += 2
		} else {
			price -= 1.5
		}
		data.OHLCV = append(data.OHLCV, dto.StockOHLCV{
			Open:      price - 0.5,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
			Timestamp: int64(1704067200 + i*86400),
		})
	}
	return data
}

func TestRunBacktest_FullPipeline(t *testing.T) {
	cfg := testConfig()
	svc := NewBacktestService(cfg, logger.NewNop(), &fakeCandleRepository{data: syntheticStockData("BBCA.JK", 60)}, nil, nil)

	result, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{
		Symbol: "BBCA.JK", Range: "1y", Interval: "1d",
	})
	require.NoError(t, err)

	assert.Equal(t, "BBCA.JK", result.Symbol)
	assert.Equal(t, cfg.Backtest.InitialCash, result.InitialCash)
	assert.Len(t, result.EquityCurve, 60)
	require.NotEmpty(t, result.Trades)

	for i, trade := range result.Trades {
		assert.Greater(t, trade.ExitIndex, trade.EntryIndex, "trade %d", i)
		if i > 0 {
			assert.GreaterOrEqual(t, trade.EntryIndex, result.Trades[i-1].ExitIndex, "trade %d overlaps", i)
		}
	}

	// Metrik konsisten dengan equity akhir.
	assert.InDelta(t, result.FinalEquity/result.InitialCash-1, result.Metrics.TotalReturn, 1e-9)
	require.NotNil(t, result.Metrics.WinRate)
}

func TestRunBacktest_PropagatesDataErrors(t *testing.T) {
	cfg := testConfig()

	t.Run("insufficient data", func(t *testing.T) {
		repoErr := fmt.Errorf("%w: no candles for symbol", dto.ErrInsufficientData)
		svc := NewBacktestService(cfg, logger.NewNop(), &fakeCandleRepository{err: repoErr}, nil, nil)

		_, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{Symbol: "XXXX.JK", Range: "1y", Interval: "1d"})
		require.ErrorIs(t, err, dto.ErrInsufficientData)
	})

	t.Run("malformed series", func(t *testing.T) {
		data := syntheticStockData("BBCA.JK", 10)
		data.OHLCV[5].Timestamp = data.OHLCV[4].Timestamp
		svc := NewBacktestService(cfg, logger.NewNop(), &fakeCandleRepository{data: data}, nil, nil)

		_, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"})
		require.ErrorIs(t, err, dto.ErrMalformedInput)
	})
}

func TestRunBacktest_AIReviewIsBestEffort(t *testing.T) {
	cfg := testConfig()
	candles := &fakeCandleRepository{data: syntheticStockData("BBCA.JK", 60)}

	t.Run("review attached on success", func(t *testing.T) {
		svc := NewBacktestService(cfg, logger.NewNop(), candles, nil, &fakeAIRepository{review: "solid run"})
		result, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"})
		require.NoError(t, err)
		assert.Equal(t, "solid run", result.AIReview)
	})

	t.Run("review failure does not fail the run", func(t *testing.T) {
		svc := NewBacktestService(cfg, logger.NewNop(), candles, nil, &fakeAIRepository{err: fmt.Errorf("quota exceeded")})
		result, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"})
		require.NoError(t, err)
		assert.Empty(t, result.AIReview)
	})
}

func TestRunBatch(t *testing.T) {
	cfg := testConfig()
	svc := NewBacktestService(cfg, logger.NewNop(), &fakeCandleRepository{data: syntheticStockData("BBCA.JK", 60)}, nil, nil)

	reqs := []dto.BacktestRequest{
		{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"},
		{Symbol: "BBRI.JK", Range: "1y", Interval: "1d"},
		{Symbol: "TLKM.JK", Range: "1y", Interval: "1d"},
	}

	results, err := svc.RunBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NotNil(t, r)
	}
}

func TestRunBatch_StopsOnFirstError(t *testing.T) {
	cfg := testConfig()
	repoErr := fmt.Errorf("%w: empty response", dto.ErrInsufficientData)
	svc := NewBacktestService(cfg, logger.NewNop(), &fakeCandleRepository{err: repoErr}, nil, nil)

	_, err := svc.RunBatch(context.Background(), []dto.BacktestRequest{
		{Symbol: "BBCA.JK", Range: "1y", Interval: "1d"},
	}, 2)
	require.ErrorIs(t, err, dto.ErrInsufficientData)
}

func TestHistory_RequiresDatabase(t *testing.T) {
	svc := NewBacktestService(testConfig(), logger.NewNop(), &fakeCandleRepository{}, nil, nil)

	_, err := svc.History(context.Background(), "BBCA.JK", 10)
	assert.Error(t, err)
}
