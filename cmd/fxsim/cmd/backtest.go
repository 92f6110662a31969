package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxsim/backtest"
	"github.com/rustyeddy/fxsim/journal"
	"github.com/rustyeddy/fxsim/market"
	"github.com/rustyeddy/fxsim/models"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run one backtest and print the report",
	Long: `Backtest runs the prediction-driven strategy over a synthetic price
series for the given pair and date range.

Example:
  fxsim backtest -p EURUSD -m cnn --start 2024-01-01 --end 2024-03-01`,
	RunE: runBacktestCmd,
}

var (
	btPair      string
	btTimeframe string
	btModel     string
	btStart     string
	btEnd       string
	btBalance   float64
	btLeverage  float64
	btRisk      float64
	btLot       float64
	btSpread    float64
	btSave      bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btPair, "pair", "p", "EURUSD", "currency pair")
	backtestCmd.Flags().StringVarP(&btTimeframe, "timeframe", "t", "H1", "bar timeframe (M1..D1)")
	backtestCmd.Flags().StringVarP(&btModel, "model", "m", "cnn", "model type (cnn, rnn, tcn)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYY-MM-DD (required)")

	backtestCmd.Flags().Float64VarP(&btBalance, "balance", "b", 10_000, "starting account balance")
	backtestCmd.Flags().Float64Var(&btLeverage, "leverage", 100, "account leverage")
	backtestCmd.Flags().Float64Var(&btRisk, "risk", 1.0, "risk factor scaling TP/SL distances")
	backtestCmd.Flags().Float64Var(&btLot, "lot", 0.01, "lot size per order")
	backtestCmd.Flags().Float64Var(&btSpread, "spread", 2.0, "spread in pips applied to BUY entries")

	backtestCmd.Flags().BoolVar(&btSave, "save", false, "persist the run to the journal")

	backtestCmd.MarkFlagRequired("start")
	backtestCmd.MarkFlagRequired("end")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	if !market.ValidPair(btPair) {
		return fmt.Errorf("unknown currency pair %q", btPair)
	}
	if !market.ValidTimeframe(btTimeframe) {
		return fmt.Errorf("unknown timeframe %q", btTimeframe)
	}

	start, err := time.Parse("2006-01-02", btStart)
	if err != nil {
		return fmt.Errorf("bad start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", btEnd)
	if err != nil {
		return fmt.Errorf("bad end date: %w", err)
	}

	p := backtest.Params{
		Pair:           btPair,
		Timeframe:      btTimeframe,
		ModelType:      btModel,
		Start:          start,
		End:            end,
		InitialBalance: btBalance,
		Leverage:       btLeverage,
		RiskFactor:     btRisk,
		LotSize:        btLot,
		SpreadPips:     btSpread,
	}

	runner := backtest.NewRunner(models.NewManager())
	report, err := runner.Run(context.Background(), p)
	if err != nil {
		return err
	}

	fmt.Printf("Backtest %s %s (%s) %s to %s\n",
		report.Pair, report.Timeframe, report.ModelType,
		report.StartDate.Format("2006-01-02"), report.EndDate.Format("2006-01-02"))
	fmt.Printf("  Trades:        %d (%d wins / %d losses, %.1f%% win rate)\n",
		report.TotalTrades, report.WinningTrades, report.LosingTrades, report.WinRate*100)
	fmt.Printf("  Net P/L:       $%.2f\n", report.TotalProfit)
	fmt.Printf("  Balance:       $%.2f -> $%.2f\n", report.InitialBalance, report.FinalBalance)
	fmt.Printf("  Max Drawdown:  %.2f%%\n", report.MaxDrawdown*100)
	fmt.Printf("  Sharpe Ratio:  %.2f\n", report.SharpeRatio)

	if btSave {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		j, err := journal.NewSQLite(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		run, trades := journal.FromReport(report)
		if err := j.RecordBacktest(context.Background(), run, trades); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		fmt.Printf("  Saved as run %s\n", run.RunID)
	}

	return nil
}
