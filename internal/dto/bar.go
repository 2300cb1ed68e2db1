package dto

import (
	"errors"
	"fmt"
	"time"
)

// Nama kolom indikator yang dikenali oleh signal generator.
const (
	IndicatorRSI        = "rsi"
	IndicatorMACD       = "macd"
	IndicatorMACDSignal = "macd_signal"
	IndicatorSMAShort   = "sma_short"
	IndicatorSMALong    = "sma_long"
)

var (
	ErrMalformedInput   = errors.New("malformed input series")
	ErrInsufficientData = errors.New("insufficient data")
)

// Bar merepresentasikan satu observasi OHLCV beserta nilai indikator
// yang sudah di-align per index. Indikator yang tidak ada di map berarti
// undefined (masih dalam warm-up window).
type Bar struct {
	Timestamp  time.Time          `json:"timestamp"`
	Open       float64            `json:"open"`
	High       float64            `json:"high"`
	Low        float64            `json:"low"`
	Close      float64            `json:"close"`
	Volume     int64              `json:"volume"`
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Indicator mengembalikan nilai indikator dan flag apakah nilainya defined.
func (b *Bar) Indicator(name string) (float64, bool) {
	if b.Indicators == nil {
		return 0, false
	}
	v, ok := b.Indicators[name]
	return v, ok
}

// BarSeries adalah urutan bar yang immutable setelah divalidasi.
// Iterasi selalu berdasarkan index menaik.
type BarSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

func (s *BarSeries) Len() int {
	return len(s.Bars)
}

// At mengembalikan pointer ke bar pada index i. Index di luar range
// adalah bug pemanggil, sama seperti akses slice biasa.
func (s *BarSeries) At(i int) *Bar {
	return &s.Bars[i]
}

// Validate memastikan timestamp strictly increasing dan field OHLCV terisi.
// Series yang tidak valid membatalkan seluruh backtest.
func (s *BarSeries) Validate() error {
	for i := range s.Bars {
		b := &s.Bars[i]
		if b.Timestamp.IsZero() {
			return fmt.Errorf("%w: bar %d has zero timestamp", ErrMalformedInput, i)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: bar %d has non-positive OHLC value", ErrMalformedInput, i)
		}
		if i > 0 && !s.Bars[i-1].Timestamp.Before(b.Timestamp) {
			return fmt.Errorf("%w: bar %d timestamp %s is not after bar %d timestamp %s",
				ErrMalformedInput, i, b.Timestamp.Format(time.RFC3339), i-1, s.Bars[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}
