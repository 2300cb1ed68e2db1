package engine

import (
	"testing"
	"time"

	"golang-backtest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesFromCloses(closes []float64) *dto.BarSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]dto.Bar, len(closes))
	for i, c := range closes {
		bars[i] = dto.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return &dto.BarSeries{Symbol: "TEST", Bars: bars}
}

func TestRun_AllHoldKeepsEquityFlat(t *testing.T) {
	series := seriesFromCloses([]float64{100, 110, 90, 120})
	signals := []dto.Signal{dto.SignalHold, dto.SignalHold, dto.SignalHold, dto.SignalHold}

	result, err := Run(Config{InitialCash: 10000}, series, signals)
	require.NoError(t, err)

	assert.Empty(t, result.Trades)
	require.Len(t, result.EquityCurve, series.Len())
	for i, p := range result.EquityCurve {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, 10000.0, p.Value)
	}
	assert.Equal(t, 10000.0, result.FinalEquity)
}

func TestRun_BuyThenSell(t *testing.T) {
	series := seriesFromCloses([]float64{100, 100, 110, 110})
	signals := []dto.Signal{dto.SignalHold, dto.SignalBuy, dto.SignalSell, dto.SignalHold}

	result, err := Run(Config{InitialCash: 1000}, series, signals)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, 1, trade.EntryIndex)
	assert.Equal(t, 2, trade.ExitIndex)
	assert.Equal(t, dto.ExitReasonSignal, trade.ExitReason)
	assert.False(t, trade.Forced())
	assert.InDelta(t, 10.0, trade.Shares, 1e-9)
	assert.InDelta(t, 100.0, trade.ProfitLoss, 1e-9)
	assert.InDelta(t, 0.10, trade.ReturnPct, 1e-9)

	// Mark-to-market: flat, long di 100, terjual di 110.
	require.Len(t, result.EquityCurve, 4)
	assert.InDelta(t, 1000.0, result.EquityCurve[0].Value, 1e-9)
	assert.InDelta(t, 1000.0, result.EquityCurve[1].Value, 1e-9)
	assert.InDelta(t, 1100.0, result.EquityCurve[2].Value, 1e-9)
	assert.InDelta(t, 1100.0, result.EquityCurve[3].Value, 1e-9)
}

func TestRun_ForcedCloseAtEndOfSeries(t *testing.T) {
	series := seriesFromCloses([]float64{100, 100, 120})
	signals := []dto.Signal{dto.SignalHold, dto.SignalBuy, dto.SignalHold}

	result, err := Run(Config{InitialCash: 1000}, series, signals)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, series.Len()-1, trade.ExitIndex)
	assert.Equal(t, dto.ExitReasonEndOfData, trade.ExitReason)
	assert.True(t, trade.Forced())
	assert.InDelta(t, 1200.0, result.FinalEquity, 1e-9)
}

func TestRun_IgnoresRedundantSignals(t *testing.T) {
	series := seriesFromCloses([]float64{100, 100, 100, 110, 110})
	// SELL saat flat dan BUY saat sudah long harus diabaikan.
	signals := []dto.Signal{dto.SignalSell, dto.SignalBuy, dto.SignalBuy, dto.SignalSell, dto.SignalSell}

	result, err := Run(Config{InitialCash: 1000}, series, signals)
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	assert.Equal(t, 1, result.Trades[0].EntryIndex)
	assert.Equal(t, 3, result.Trades[0].ExitIndex)
}

func TestRun_NeverHoldsMoreThanOnePosition(t *testing.T) {
	series := seriesFromCloses([]float64{100, 101, 102, 103, 104, 105})
	signals := []dto.Signal{
		dto.SignalBuy, dto.SignalBuy, dto.SignalSell,
		dto.SignalBuy, dto.SignalBuy, dto.SignalSell,
	}

	result, err := Run(Config{InitialCash: 1000}, series, signals)
	require.NoError(t, err)

	// Dua round-trip, tidak pernah overlap.
	require.Len(t, result.Trades, 2)
	for i := 1; i < len(result.Trades); i++ {
		assert.GreaterOrEqual(t, result.Trades[i].EntryIndex, result.Trades[i-1].ExitIndex)
	}
}

func TestRun_CommissionAndSlippageReducePnL(t *testing.T) {
	series := seriesFromCloses([]float64{100, 100, 110})
	signals := []dto.Signal{dto.SignalHold, dto.SignalBuy, dto.SignalSell}

	gross, err := Run(Config{InitialCash: 1000}, series, signals)
	require.NoError(t, err)

	net, err := Run(Config{InitialCash: 1000, CommissionPct: 0.001, SlippagePct: 0.001}, series, signals)
	require.NoError(t, err)

	require.Len(t, gross.Trades, 1)
	require.Len(t, net.Trades, 1)
	assert.Greater(t, gross.Trades[0].ProfitLoss, net.Trades[0].ProfitLoss)

	// Entry lebih mahal, exit lebih murah.
	assert.Greater(t, net.Trades[0].EntryPrice, gross.Trades[0].EntryPrice)
	assert.Less(t, net.Trades[0].ExitPrice, gross.Trades[0].ExitPrice)
}

func TestRun_FailsFastOnMalformedInput(t *testing.T) {
	t.Run("non monotonic timestamps", func(t *testing.T) {
		series := seriesFromCloses([]float64{100, 100})
		series.Bars[1].Timestamp = series.Bars[0].Timestamp

		_, err := Run(Config{InitialCash: 1000}, series, []dto.Signal{dto.SignalHold, dto.SignalHold})
		require.ErrorIs(t, err, dto.ErrMalformedInput)
	})

	t.Run("signal length mismatch", func(t *testing.T) {
		series := seriesFromCloses([]float64{100, 100})

		_, err := Run(Config{InitialCash: 1000}, series, []dto.Signal{dto.SignalHold})
		require.ErrorIs(t, err, dto.ErrMalformedInput)
	})

	t.Run("non positive close", func(t *testing.T) {
		series := seriesFromCloses([]float64{100, 100})
		series.Bars[1].Close = 0

		_, err := Run(Config{InitialCash: 1000}, series, []dto.Signal{dto.SignalHold, dto.SignalHold})
		require.ErrorIs(t, err, dto.ErrMalformedInput)
	})
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{InitialCash: 0})
	assert.Error(t, err)

	_, err = New(Config{InitialCash: 1000, CommissionPct: -0.1})
	assert.Error(t, err)

	_, err = New(Config{InitialCash: 1000, SlippagePct: 1.0})
	assert.Error(t, err)
}
