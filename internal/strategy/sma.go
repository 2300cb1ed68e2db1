package strategy

import "golang-backtest/internal/dto"

// SMARule mendeteksi crossover antara SMA pendek dan SMA panjang.
type SMARule struct{}

func NewSMARule() *SMARule {
	return &SMARule{}
}

func (r *SMARule) Name() string {
	return "sma"
}

func (r *SMARule) Evaluate(prev, cur *dto.Bar) (dto.Signal, bool) {
	return crossoverSignal(prev, cur, dto.IndicatorSMAShort, dto.IndicatorSMALong)
}
