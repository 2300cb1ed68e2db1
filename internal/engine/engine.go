// Package engine menjalankan state machine single-position di atas urutan
// bar dan sinyal. Satu pass, urutan index menaik, fill selalu di harga close.
package engine

import (
	"fmt"
	"time"

	"golang-backtest/internal/dto"
)

// Config memuat parameter eksekusi. Commission dan slippage diterapkan
// simetris di entry dan exit.
type Config struct {
	InitialCash   float64
	CommissionPct float64
	SlippagePct   float64
}

// position hanya hidup selama engine memegang posisi terbuka. Ditutup
// menjadi dto.Trade saat sinyal SELL atau forced close di akhir series.
type position struct {
	entryIndex int
	entryDate  time.Time
	entryPrice float64
	entryCost  float64
	shares     float64
}

// Engine memproses satu bar per panggilan step. State yang dibawa antar
// bar hanya {posisi terbuka, cash}, sehingga varian incremental bisa
// memakai transition function yang sama.
type Engine struct {
	cfg    Config
	cash   float64
	open   *position
	trades []dto.Trade
	equity []dto.EquityPoint
}

func New(cfg Config) (*Engine, error) {
	if cfg.InitialCash <= 0 {
		return nil, fmt.Errorf("initial cash must be positive, got %.2f", cfg.InitialCash)
	}
	if cfg.CommissionPct < 0 || cfg.CommissionPct >= 1 {
		return nil, fmt.Errorf("commission pct must be in [0,1), got %.4f", cfg.CommissionPct)
	}
	if cfg.SlippagePct < 0 || cfg.SlippagePct >= 1 {
		return nil, fmt.Errorf("slippage pct must be in [0,1), got %.4f", cfg.SlippagePct)
	}
	return &Engine{cfg: cfg, cash: cfg.InitialCash}, nil
}

// Run mengeksekusi seluruh series dan mengembalikan hasil final. Series
// divalidasi dulu; input yang malformed membatalkan run tanpa hasil parsial.
func Run(cfg Config, series *dto.BarSeries, signals []dto.Signal) (*dto.BacktestResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(signals) != series.Len() {
		return nil, fmt.Errorf("%w: %d signals for %d bars", dto.ErrMalformedInput, len(signals), series.Len())
	}

	e, err := New(cfg)
	if err != nil {
		return nil, err
	}

	for i := 0; i < series.Len(); i++ {
		e.step(i, series.At(i), signals[i])
	}
	e.finish(series)

	result := &dto.BacktestResult{
		Symbol:      series.Symbol,
		InitialCash: cfg.InitialCash,
		Trades:      e.trades,
		EquityCurve: e.equity,
	}
	if series.Len() > 0 {
		result.StartDate = series.At(0).Timestamp
		result.EndDate = series.At(series.Len() - 1).Timestamp
		result.FinalEquity = e.equity[len(e.equity)-1].Value
	} else {
		result.FinalEquity = cfg.InitialCash
	}
	return result, nil
}

// step mengevaluasi satu transisi lalu mencatat nilai mark-to-market bar ini.
// Cash dan jumlah share selalu berubah bersamaan dalam satu transisi.
func (e *Engine) step(index int, bar *dto.Bar, signal dto.Signal) {
	switch {
	case e.open == nil && signal == dto.SignalBuy:
		e.openPosition(index, bar)
	case e.open != nil && signal == dto.SignalSell:
		e.closePosition(index, bar, dto.ExitReasonSignal)
	default:
		// HOLD, SELL saat flat, atau BUY saat sudah long: tidak ada transisi.
	}

	e.equity = append(e.equity, dto.EquityPoint{
		Index:     index,
		Timestamp: bar.Timestamp,
		Value:     e.markToMarket(bar.Close),
	})
}

// finish menutup paksa posisi yang masih terbuka di bar terakhir.
func (e *Engine) finish(series *dto.BarSeries) {
	if e.open == nil || series.Len() == 0 {
		return
	}
	last := series.Len() - 1
	e.closePosition(last, series.At(last), dto.ExitReasonEndOfData)
	// Titik equity bar terakhir sudah ditulis mark-to-market di close yang
	// sama, jadi nilainya hanya bergeser sebesar biaya exit.
	e.equity[len(e.equity)-1].Value = e.cash
}

func (e *Engine) openPosition(index int, bar *dto.Bar) {
	fillPrice := bar.Close * (1 + e.cfg.SlippagePct)
	investable := e.cash * (1 - e.cfg.CommissionPct)

	e.open = &position{
		entryIndex: index,
		entryDate:  bar.Timestamp,
		entryPrice: fillPrice,
		entryCost:  e.cash,
		shares:     investable / fillPrice,
	}
	e.cash = 0
}

func (e *Engine) closePosition(index int, bar *dto.Bar, reason dto.ExitReason) {
	fillPrice := bar.Close * (1 - e.cfg.SlippagePct)
	proceeds := e.open.shares * fillPrice * (1 - e.cfg.CommissionPct)

	pos := e.open
	e.trades = append(e.trades, dto.Trade{
		EntryIndex: pos.entryIndex,
		EntryDate:  pos.entryDate,
		EntryPrice: pos.entryPrice,
		ExitIndex:  index,
		ExitDate:   bar.Timestamp,
		ExitPrice:  fillPrice,
		Shares:     pos.shares,
		ProfitLoss: proceeds - pos.entryCost,
		ReturnPct:  (proceeds - pos.entryCost) / pos.entryCost,
		ExitReason: reason,
	})
	e.cash = proceeds
	e.open = nil
}

// markToMarket menilai posisi terbuka di harga close bar berjalan.
func (e *Engine) markToMarket(closePrice float64) float64 {
	if e.open == nil {
		return e.cash
	}
	return e.cash + e.open.shares*closePrice
}
