package strategy

import "golang-backtest/internal/dto"

// MACDRule mendeteksi crossover antara garis MACD dan signal line-nya.
type MACDRule struct{}

func NewMACDRule() *MACDRule {
	return &MACDRule{}
}

func (r *MACDRule) Name() string {
	return "macd"
}

func (r *MACDRule) Evaluate(prev, cur *dto.Bar) (dto.Signal, bool) {
	return crossoverSignal(prev, cur, dto.IndicatorMACD, dto.IndicatorMACDSignal)
}

// crossoverSignal mengembalikan BUY saat deret fast menembus slow dari bawah
// ke atas antara bar i-1 dan i, SELL untuk arah sebaliknya. Kedua deret harus
// defined di kedua bar; kalau tidak, rule abstain.
func crossoverSignal(prev, cur *dto.Bar, fastName, slowName string) (dto.Signal, bool) {
	if prev == nil {
		return dto.SignalHold, false
	}
	prevFast, ok := prev.Indicator(fastName)
	if !ok {
		return dto.SignalHold, false
	}
	prevSlow, ok := prev.Indicator(slowName)
	if !ok {
		return dto.SignalHold, false
	}
	curFast, ok := cur.Indicator(fastName)
	if !ok {
		return dto.SignalHold, false
	}
	curSlow, ok := cur.Indicator(slowName)
	if !ok {
		return dto.SignalHold, false
	}

	switch {
	case prevFast <= prevSlow && curFast > curSlow:
		return dto.SignalBuy, true
	case prevFast >= prevSlow && curFast < curSlow:
		return dto.SignalSell, true
	}
	return dto.SignalHold, true
}
