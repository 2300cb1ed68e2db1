package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestRun adalah hasil backtest yang dipersist untuk riwayat.
// Ledger dan metrik lengkap disimpan sebagai kolom JSON.
type BacktestRun struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Symbol      string    `gorm:"index" json:"symbol"`
	Range       string    `json:"range"`
	Interval    string    `json:"interval"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	InitialCash float64   `json:"initial_cash"`
	FinalEquity float64   `json:"final_equity"`
	TotalReturn float64   `json:"total_return"`
	MaxDrawdown float64   `json:"max_drawdown"`
	SharpeRatio *float64  `json:"sharpe_ratio"`
	WinRate     *float64  `json:"win_rate"`
	TotalTrades int       `json:"total_trades"`

	Trades  datatypes.JSON `json:"trades"`
	Metrics datatypes.JSON `json:"metrics"`

	AIReview  string    `json:"ai_review"`
	CreatedAt time.Time `json:"created_at"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
