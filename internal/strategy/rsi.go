package strategy

import (
	"fmt"

	"golang-backtest/internal/dto"
)

// RSIMode menentukan semantik rule RSI.
type RSIMode string

const (
	// RSIModeThreshold: BUY selama RSI < oversold, SELL selama RSI > overbought.
	RSIModeThreshold RSIMode = "threshold"
	// RSIModeCrossover: BUY saat RSI turun menembus oversold, SELL saat RSI
	// naik menembus overbought; keduanya butuh RSI bar sebelumnya.
	RSIModeCrossover RSIMode = "crossover"
)

type RSIRule struct {
	oversold   float64
	overbought float64
	mode       RSIMode
}

func NewRSIRule(oversold, overbought float64, mode RSIMode) (*RSIRule, error) {
	if oversold >= overbought {
		return nil, fmt.Errorf("rsi oversold %.2f must be below overbought %.2f", oversold, overbought)
	}
	if mode != RSIModeThreshold && mode != RSIModeCrossover {
		return nil, fmt.Errorf("unknown rsi mode: %q", mode)
	}
	return &RSIRule{oversold: oversold, overbought: overbought, mode: mode}, nil
}

func (r *RSIRule) Name() string {
	return "rsi"
}

func (r *RSIRule) Evaluate(prev, cur *dto.Bar) (dto.Signal, bool) {
	curRSI, ok := cur.Indicator(dto.IndicatorRSI)
	if !ok {
		return dto.SignalHold, false
	}

	if r.mode == RSIModeThreshold {
		switch {
		case curRSI < r.oversold:
			return dto.SignalBuy, true
		case curRSI > r.overbought:
			return dto.SignalSell, true
		}
		return dto.SignalHold, true
	}

	if prev == nil {
		return dto.SignalHold, false
	}
	prevRSI, ok := prev.Indicator(dto.IndicatorRSI)
	if !ok {
		return dto.SignalHold, false
	}

	switch {
	case prevRSI >= r.oversold && curRSI < r.oversold:
		return dto.SignalBuy, true
	case prevRSI <= r.overbought && curRSI > r.overbought:
		return dto.SignalSell, true
	}
	return dto.SignalHold, true
}
