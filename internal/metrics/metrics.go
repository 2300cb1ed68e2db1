// Package metrics menghitung statistik kinerja dari equity curve dan trade
// ledger. Semua fungsi pure dan single pass; metrik yang tidak terdefinisi
// dikembalikan sebagai nil, bukan nol.
package metrics

import (
	"math"

	"golang-backtest/internal/dto"
	"golang-backtest/pkg/utils"
)

// Config memuat parameter annualisasi dan perlakuan forced close.
type Config struct {
	RiskFreeRatePerPeriod float64
	PeriodsPerYear        int
	// ExcludeForcedClose mengeluarkan trade forced close (END_OF_DATA)
	// dari statistik per-trade seperti win rate dan profit factor.
	ExcludeForcedClose bool
}

// Calculate merangkum seluruh metrik dari hasil run engine.
func Calculate(result *dto.BacktestResult, cfg Config) dto.Metrics {
	m := dto.Metrics{}

	equity := result.EquityCurve
	if len(equity) > 0 && result.InitialCash > 0 {
		m.TotalReturn = equity[len(equity)-1].Value/result.InitialCash - 1
	}

	returns := PeriodReturns(equity)
	m.MaxDrawdown = MaxDrawdown(equity)
	m.SharpeRatio = SharpeRatio(returns, cfg.RiskFreeRatePerPeriod, cfg.PeriodsPerYear)

	if len(returns) > 0 {
		if vol := annualizedVolatility(returns, cfg.PeriodsPerYear); vol != nil {
			m.AnnualizedVolatility = vol
		}
		annual := math.Pow(1+m.TotalReturn, float64(cfg.PeriodsPerYear)/float64(len(returns))) - 1
		m.AnnualReturn = utils.ToPointer(annual)
	}

	fillTradeStats(&m, result.Trades, cfg.ExcludeForcedClose)
	return m
}

// PeriodReturns menghasilkan simple return antar titik equity berurutan.
func PeriodReturns(equity []dto.EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, equity[i].Value/prev-1)
	}
	return returns
}

// SharpeRatio mengembalikan nil ketika deret return tidak punya variansi
// (kurang dari 2 observasi atau equity curve flat).
func SharpeRatio(returns []float64, riskFreePerPeriod float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	mean := meanOf(returns)
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return nil
	}

	sharpe := (mean - riskFreePerPeriod) / math.Sqrt(variance) * math.Sqrt(float64(periodsPerYear))
	return &sharpe
}

// MaxDrawdown memakai satu forward scan dengan running peak.
func MaxDrawdown(equity []dto.EquityPoint) float64 {
	var peak, maxDD float64
	for _, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if dd := (peak - p.Value) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func annualizedVolatility(returns []float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}
	mean := meanOf(returns)
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	vol := math.Sqrt(variance) * math.Sqrt(float64(periodsPerYear))
	return &vol
}

func fillTradeStats(m *dto.Metrics, trades []dto.Trade, excludeForced bool) {
	var totalProfit, totalLoss float64
	var holdingPeriods int

	for i := range trades {
		t := &trades[i]
		if excludeForced && t.Forced() {
			continue
		}

		m.TotalTrades++
		m.TotalProfitLoss += t.ProfitLoss
		holdingPeriods += t.ExitIndex - t.EntryIndex

		if t.ProfitLoss > 0 {
			m.WinningTrades++
			totalProfit += t.ProfitLoss
		} else {
			m.LosingTrades++
			totalLoss += t.ProfitLoss
		}
	}

	if m.TotalTrades == 0 {
		// Win rate 0/0 dilaporkan undefined, bukan 0%.
		return
	}

	m.WinRate = utils.ToPointer(float64(m.WinningTrades) / float64(m.TotalTrades))
	m.AvgHoldingPeriod = utils.ToPointer(float64(holdingPeriods) / float64(m.TotalTrades))

	if totalLoss != 0 {
		m.ProfitFactor = utils.ToPointer(totalProfit / -totalLoss)
	}
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
