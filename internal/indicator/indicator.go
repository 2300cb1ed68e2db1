// Package indicator menghitung deret indikator teknikal yang di-align
// 1:1 dengan urutan bar. Nilai warm-up direpresentasikan sebagai NaN
// dan tidak pernah dilampirkan ke bar sebagai nilai defined.
package indicator

import (
	"math"

	"golang-backtest/internal/dto"
)

// SMA menghitung simple moving average dengan window tertentu.
// Index sebelum window-1 bernilai NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA menghitung exponential moving average dengan smoothing 2/(span+1),
// di-seed dengan nilai pertama.
func EMA(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if span <= 0 || len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI menghitung relative strength index memakai rolling mean sederhana
// dari gain dan loss. Index sebelum period bernilai NaN, begitu juga
// saat gain dan loss sama-sama nol (harga flat sepanjang window).
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(values); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		switch {
		case avgGain == 0 && avgLoss == 0:
			// Harga flat, RSI tidak terdefinisi.
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - (100 / (1 + rs))
		}
	}
	return out
}

// MACD mengembalikan garis MACD (EMA fast - EMA slow) dan signal line-nya.
func MACD(values []float64, fast, slow, signal int) (macd, signalLine []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)

	macd = make([]float64, len(values))
	for i := range values {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = EMA(macd, signal)
	return macd, signalLine
}

// Config memuat parameter window semua indikator yang dilampirkan ke series.
type Config struct {
	RSIPeriod      int
	SMAShortWindow int
	SMALongWindow  int
	MACDFastPeriod int
	MACDSlowPeriod int
	MACDSignal     int
}

// Attach menghitung seluruh indikator dari harga close dan melampirkannya
// ke setiap bar. Nilai NaN (warm-up) tidak dimasukkan ke map sehingga bar
// awal tetap "undefined" di mata signal generator.
func Attach(series *dto.BarSeries, cfg Config) {
	closes := make([]float64, series.Len())
	for i := range series.Bars {
		closes[i] = series.Bars[i].Close
	}

	rsi := RSI(closes, cfg.RSIPeriod)
	smaShort := SMA(closes, cfg.SMAShortWindow)
	smaLong := SMA(closes, cfg.SMALongWindow)
	macd, macdSignal := MACD(closes, cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignal)

	for i := range series.Bars {
		bar := &series.Bars[i]
		if bar.Indicators == nil {
			bar.Indicators = make(map[string]float64, 5)
		}
		setIfDefined(bar.Indicators, dto.IndicatorRSI, rsi[i])
		setIfDefined(bar.Indicators, dto.IndicatorSMAShort, smaShort[i])
		setIfDefined(bar.Indicators, dto.IndicatorSMALong, smaLong[i])
		setIfDefined(bar.Indicators, dto.IndicatorMACD, macd[i])
		setIfDefined(bar.Indicators, dto.IndicatorMACDSignal, macdSignal[i])
	}
}

func setIfDefined(m map[string]float64, name string, v float64) {
	if !math.IsNaN(v) {
		m[name] = v
	}
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
