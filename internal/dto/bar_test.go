package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBars(n int) []Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, n)
	for i := range bars {
		bars[i] = Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      100,
			High:      101,
			Low:       99,
			Close:     100,
			Volume:    1000,
		}
	}
	return bars
}

func TestBarSeries_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *BarSeries)
		wantErr bool
	}{
		{"valid series", func(s *BarSeries) {}, false},
		{"empty series", func(s *BarSeries) { s.Bars = nil }, false},
		{"zero timestamp", func(s *BarSeries) { s.Bars[1].Timestamp = time.Time{} }, true},
		{"duplicate timestamp", func(s *BarSeries) { s.Bars[2].Timestamp = s.Bars[1].Timestamp }, true},
		{"out of order timestamp", func(s *BarSeries) { s.Bars[2].Timestamp = s.Bars[0].Timestamp.Add(-time.Hour) }, true},
		{"non-positive close", func(s *BarSeries) { s.Bars[1].Close = 0 }, true},
		{"negative low", func(s *BarSeries) { s.Bars[1].Low = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &BarSeries{Symbol: "TEST", Bars: validBars(3)}
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBar_Indicator(t *testing.T) {
	b := &Bar{Indicators: map[string]float64{IndicatorRSI: 55.5}}

	v, ok := b.Indicator(IndicatorRSI)
	assert.True(t, ok)
	assert.Equal(t, 55.5, v)

	_, ok = b.Indicator(IndicatorMACD)
	assert.False(t, ok)

	// Nil map berarti semua indikator undefined.
	empty := &Bar{}
	_, ok = empty.Indicator(IndicatorRSI)
	assert.False(t, ok)
}

func TestStockData_ToBarSeries(t *testing.T) {
	data := &StockData{
		Symbol: "BBCA.JK",
		OHLCV: []StockOHLCV{
			{Open: 100, High: 102, Low: 99, Close: 101, Volume: 500, Timestamp: 1704067200},
			{Open: 101, High: 103, Low: 100, Close: 102, Volume: 600, Timestamp: 1704153600},
		},
	}

	series := data.ToBarSeries()

	assert.Equal(t, "BBCA.JK", series.Symbol)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series.At(0).Timestamp)
	assert.Equal(t, 102.0, series.At(1).Close)
	require.NoError(t, series.Validate())
}

func TestTrade_Forced(t *testing.T) {
	closed := Trade{ExitReason: ExitReasonSignal}
	forced := Trade{ExitReason: ExitReasonEndOfData}
	assert.False(t, closed.Forced())
	assert.True(t, forced.Forced())
}

func TestAggregationMode_Valid(t *testing.T) {
	assert.True(t, AggregationUnanimous.Valid())
	assert.True(t, AggregationAny.Valid())
	assert.True(t, AggregationMajority.Valid())
	assert.False(t, AggregationMode("consensus").Valid())
}
