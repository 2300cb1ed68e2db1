// Package strategy mengubah deret indikator menjadi sinyal diskrit per bar.
// Setiap rule hanya melihat bar saat ini dan bar tepat sebelumnya, sehingga
// tidak ada look-ahead.
package strategy

import (
	"fmt"

	"golang-backtest/internal/dto"
)

// Rule mengevaluasi satu sub-strategi terhadap pasangan bar berurutan.
// prev bernilai nil untuk bar pertama. Return kedua bernilai false ketika
// indikator yang dibutuhkan masih undefined (warm-up) sehingga rule tidak
// ikut voting sama sekali; true dengan sinyal HOLD berarti rule melihat
// datanya dan memutuskan tidak ada aksi.
type Rule interface {
	Name() string
	Evaluate(prev, cur *dto.Bar) (dto.Signal, bool)
}

// CombinedStrategy menggabungkan vote beberapa rule dengan satu
// aggregation mode.
type CombinedStrategy struct {
	rules []Rule
	mode  dto.AggregationMode
}

func NewCombinedStrategy(mode dto.AggregationMode, rules ...Rule) (*CombinedStrategy, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown aggregation mode: %q", mode)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("combined strategy requires at least one rule")
	}
	return &CombinedStrategy{rules: rules, mode: mode}, nil
}

func (s *CombinedStrategy) Name() string {
	return "combined"
}

// Evaluate menggabungkan vote semua rule yang punya data untuk satu bar.
func (s *CombinedStrategy) Evaluate(prev, cur *dto.Bar) (dto.Signal, bool) {
	var buys, sells, holds int
	for _, r := range s.rules {
		sig, ok := r.Evaluate(prev, cur)
		if !ok {
			continue
		}
		switch sig {
		case dto.SignalBuy:
			buys++
		case dto.SignalSell:
			sells++
		default:
			holds++
		}
	}

	voting := buys + sells + holds
	if voting == 0 {
		// Semua rule masih warm-up.
		return dto.SignalHold, false
	}

	switch s.mode {
	case dto.AggregationUnanimous:
		if buys == voting {
			return dto.SignalBuy, true
		}
		if sells == voting {
			return dto.SignalSell, true
		}
	case dto.AggregationAny:
		// Konflik BUY vs SELL di bar yang sama selalu jadi HOLD.
		if buys > 0 && sells == 0 {
			return dto.SignalBuy, true
		}
		if sells > 0 && buys == 0 {
			return dto.SignalSell, true
		}
	case dto.AggregationMajority:
		if buys > sells {
			return dto.SignalBuy, true
		}
		if sells > buys {
			return dto.SignalSell, true
		}
	}
	return dto.SignalHold, true
}

// GenerateSignals menghasilkan tepat satu sinyal untuk setiap bar pada
// series, berurutan sesuai index. Bar pertama selalu HOLD karena tidak
// punya bar pembanding.
func GenerateSignals(series *dto.BarSeries, rule Rule) []dto.Signal {
	signals := make([]dto.Signal, series.Len())
	for i := range signals {
		if i == 0 {
			signals[i] = dto.SignalHold
			continue
		}
		sig, ok := rule.Evaluate(series.At(i-1), series.At(i))
		if !ok {
			sig = dto.SignalHold
		}
		signals[i] = sig
	}
	return signals
}

// Config memuat seluruh parameter signal generator.
type Config struct {
	RSIOversold     float64
	RSIOverbought   float64
	RSIMode         RSIMode
	AggregationMode dto.AggregationMode
	EnableRSI       bool
	EnableMACD      bool
	EnableSMA       bool
}

// Build merakit CombinedStrategy dari konfigurasi rule yang aktif.
func Build(cfg Config) (*CombinedStrategy, error) {
	var rules []Rule
	if cfg.EnableRSI {
		rsiRule, err := NewRSIRule(cfg.RSIOversold, cfg.RSIOverbought, cfg.RSIMode)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rsiRule)
	}
	if cfg.EnableMACD {
		rules = append(rules, NewMACDRule())
	}
	if cfg.EnableSMA {
		rules = append(rules, NewSMARule())
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rule enabled")
	}
	return NewCombinedStrategy(cfg.AggregationMode, rules...)
}
