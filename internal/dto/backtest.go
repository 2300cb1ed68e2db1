package dto

import "time"

// BacktestRequest mendefinisikan parameter untuk menjalankan sebuah backtest.
type BacktestRequest struct {
	Symbol   string `json:"symbol" validate:"required"`
	Range    string `json:"range" validate:"required"`
	Interval string `json:"interval" validate:"required"`
}

// ExitReason menandai kenapa sebuah posisi ditutup.
type ExitReason string

const (
	// ExitReasonSignal berarti posisi ditutup karena sinyal SELL.
	ExitReasonSignal ExitReason = "SIGNAL"
	// ExitReasonEndOfData berarti forced close di bar terakhir karena
	// series habis saat posisi masih terbuka.
	ExitReasonEndOfData ExitReason = "END_OF_DATA"
)

// Trade mencatat satu transaksi round-trip yang sudah ditutup.
// Immutable setelah ditambahkan ke ledger.
type Trade struct {
	EntryIndex int        `json:"entry_index"`
	EntryDate  time.Time  `json:"entry_date"`
	EntryPrice float64    `json:"entry_price"`
	ExitIndex  int        `json:"exit_index"`
	ExitDate   time.Time  `json:"exit_date"`
	ExitPrice  float64    `json:"exit_price"`
	Shares     float64    `json:"shares"`
	ProfitLoss float64    `json:"profit_loss"`
	ReturnPct  float64    `json:"return_pct"`
	ExitReason ExitReason `json:"exit_reason"`
}

// Forced melaporkan apakah trade ini hasil forced close di akhir series.
func (t *Trade) Forced() bool {
	return t.ExitReason == ExitReasonEndOfData
}

// EquityPoint adalah nilai mark-to-market portfolio pada satu bar.
type EquityPoint struct {
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Metrics merangkum kinerja dari equity curve dan trade ledger.
// Field pointer bernilai nil ketika metrik tidak terdefinisi (misal Sharpe
// pada equity curve tanpa variansi, win rate tanpa trade) supaya caller
// tidak salah baca "tidak ada sinyal" sebagai "kinerja nol".
type Metrics struct {
	TotalReturn          float64  `json:"total_return"`
	AnnualReturn         *float64 `json:"annual_return,omitempty"`
	AnnualizedVolatility *float64 `json:"annualized_volatility,omitempty"`
	SharpeRatio          *float64 `json:"sharpe_ratio,omitempty"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	WinRate              *float64 `json:"win_rate,omitempty"`
	ProfitFactor         *float64 `json:"profit_factor,omitempty"`
	TotalTrades          int      `json:"total_trades"`
	WinningTrades        int      `json:"winning_trades"`
	LosingTrades         int      `json:"losing_trades"`
	TotalProfitLoss      float64  `json:"total_profit_loss"`
	AvgHoldingPeriod     *float64 `json:"avg_holding_period,omitempty"`
}

// BacktestResult merangkum hasil dari satu sesi backtest.
// Setelah dikembalikan, engine tidak memegang state apa pun.
type BacktestResult struct {
	Symbol      string        `json:"symbol"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	InitialCash float64       `json:"initial_cash"`
	FinalEquity float64       `json:"final_equity"`
	Trades      []Trade       `json:"trades"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Metrics     Metrics       `json:"metrics"`
	AIReview    string        `json:"ai_review,omitempty"`
}
