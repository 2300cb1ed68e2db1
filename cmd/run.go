package cmd

import (
	"context"
	"fmt"
	"log"

	"golang-backtest/internal/dto"
	"golang-backtest/internal/repository"
	"golang-backtest/internal/service"
	"golang-backtest/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	runSymbol   string
	runRange    string
	runInterval string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single backtest and print the results",
	Run:   RunOnce,
}

func init() {
	runCmd.Flags().StringVar(&runSymbol, "symbol", "AAPL", "ticker symbol to backtest")
	runCmd.Flags().StringVar(&runRange, "range", "5y", "history range (1mo, 3mo, 6mo, 1y, 2y, 5y, 10y)")
	runCmd.Flags().StringVar(&runInterval, "interval", "1d", "bar interval")
}

func RunOnce(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.GormDB(), appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	backtestService := service.NewBacktestService(appDep.cfg, appDep.log, repo.CandleRepo, repo.BacktestRunRepo, repo.GeminiAIRepo)

	result, err := backtestService.RunBacktest(ctx, dto.BacktestRequest{
		Symbol:   runSymbol,
		Range:    runRange,
		Interval: runInterval,
	})
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	printResult(result)
}

func printResult(r *dto.BacktestResult) {
	m := r.Metrics
	fmt.Printf("==================== BACKTEST RESULTS ====================\n")
	fmt.Printf("Symbol:                %s\n", r.Symbol)
	fmt.Printf("Period:                %s to %s\n", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	fmt.Printf("Initial cash:          %.2f\n", r.InitialCash)
	fmt.Printf("Final equity:          %.2f\n", r.FinalEquity)
	fmt.Printf("Total return:          %s\n", utils.FormatPercentage(m.TotalReturn))
	fmt.Printf("Annual return:         %s\n", formatOptionalPct(m.AnnualReturn))
	fmt.Printf("Annualized volatility: %s\n", formatOptionalPct(m.AnnualizedVolatility))
	fmt.Printf("Sharpe ratio:          %s\n", utils.FormatOptionalFloat(m.SharpeRatio, "%.4f"))
	fmt.Printf("Max drawdown:          %s\n", utils.FormatPercentage(m.MaxDrawdown))
	fmt.Printf("Total trades:          %d\n", m.TotalTrades)
	fmt.Printf("Win rate:              %s\n", formatOptionalPct(m.WinRate))
	if r.AIReview != "" {
		fmt.Printf("\nAI review:\n%s\n", r.AIReview)
	}
}

func formatOptionalPct(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return utils.FormatPercentage(*v)
}
