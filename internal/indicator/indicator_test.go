package indicator

import (
	"math"
	"testing"
	"time"

	"golang-backtest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got := SMA(values, 3)

	require.Len(t, got, 5)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 2.0, got[2], 1e-9)
	assert.InDelta(t, 3.0, got[3], 1e-9)
	assert.InDelta(t, 4.0, got[4], 1e-9)
}

func TestSMA_WindowLargerThanSeries(t *testing.T) {
	got := SMA([]float64{1, 2}, 5)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMA(t *testing.T) {
	values := []float64{10, 20, 30}

	got := EMA(values, 3)

	// alpha = 0.5, di-seed dengan nilai pertama.
	require.Len(t, got, 3)
	assert.InDelta(t, 10.0, got[0], 1e-9)
	assert.InDelta(t, 15.0, got[1], 1e-9)
	assert.InDelta(t, 22.5, got[2], 1e-9)
}

func TestRSI(t *testing.T) {
	t.Run("all gains saturate at 100", func(t *testing.T) {
		values := []float64{1, 2, 3, 4, 5, 6}
		got := RSI(values, 3)

		for i := 0; i < 3; i++ {
			assert.True(t, math.IsNaN(got[i]), "index %d should be warm-up", i)
		}
		assert.InDelta(t, 100.0, got[3], 1e-9)
		assert.InDelta(t, 100.0, got[5], 1e-9)
	})

	t.Run("flat prices stay undefined", func(t *testing.T) {
		values := []float64{5, 5, 5, 5, 5}
		got := RSI(values, 3)
		for i, v := range got {
			assert.True(t, math.IsNaN(v), "index %d", i)
		}
	})

	t.Run("balanced moves land near 50", func(t *testing.T) {
		values := []float64{10, 11, 10, 11, 10, 11}
		got := RSI(values, 4)
		require.False(t, math.IsNaN(got[5]))
		assert.InDelta(t, 50.0, got[5], 1.0)
	})

	t.Run("too short series", func(t *testing.T) {
		got := RSI([]float64{1, 2}, 14)
		for _, v := range got {
			assert.True(t, math.IsNaN(v))
		}
	})
}

func TestMACD(t *testing.T) {
	values := []float64{10, 11, 12, 13, 14, 15, 16, 17}

	macd, signal := MACD(values, 3, 6, 4)

	require.Len(t, macd, len(values))
	require.Len(t, signal, len(values))
	// Kedua EMA di-seed dengan nilai yang sama, jadi MACD mulai dari 0.
	assert.InDelta(t, 0.0, macd[0], 1e-9)
	// Tren naik stabil membuat EMA fast di atas EMA slow.
	assert.Greater(t, macd[len(macd)-1], 0.0)
	assert.Greater(t, macd[len(macd)-1], signal[len(signal)-1])
}

func TestAttach(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{10, 11, 12, 11, 13, 14, 13, 15, 16, 17}
	bars := make([]dto.Bar, len(closes))
	for i, c := range closes {
		bars[i] = dto.Bar{Timestamp: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	series := &dto.BarSeries{Symbol: "TEST", Bars: bars}

	Attach(series, Config{
		RSIPeriod:      3,
		SMAShortWindow: 2,
		SMALongWindow:  5,
		MACDFastPeriod: 3,
		MACDSlowPeriod: 6,
		MACDSignal:     4,
	})

	// Bar pertama: hanya MACD yang sudah defined (EMA di-seed dari awal).
	first := series.At(0)
	_, ok := first.Indicator(dto.IndicatorRSI)
	assert.False(t, ok)
	_, ok = first.Indicator(dto.IndicatorSMAShort)
	assert.False(t, ok)

	// Setelah warm-up semua indikator tersedia.
	last := series.At(series.Len() - 1)
	for _, name := range []string{
		dto.IndicatorRSI,
		dto.IndicatorSMAShort,
		dto.IndicatorSMALong,
		dto.IndicatorMACD,
		dto.IndicatorMACDSignal,
	} {
		v, ok := last.Indicator(name)
		assert.True(t, ok, "indicator %s should be defined", name)
		assert.False(t, math.IsNaN(v))
	}

	// SMA short bar ke-2 = rata-rata dua close pertama.
	v, ok := series.At(1).Indicator(dto.IndicatorSMAShort)
	require.True(t, ok)
	assert.InDelta(t, 10.5, v, 1e-9)
}
