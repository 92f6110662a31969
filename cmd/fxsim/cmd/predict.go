package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxsim/market"
	"github.com/rustyeddy/fxsim/models"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print a one-shot price prediction",
	RunE:  runPredict,
}

var (
	prPair      string
	prTimeframe string
	prModel     string
)

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&prPair, "pair", "p", "EURUSD", "currency pair")
	predictCmd.Flags().StringVarP(&prTimeframe, "timeframe", "t", "H1", "bar timeframe (M1..D1)")
	predictCmd.Flags().StringVarP(&prModel, "model", "m", "cnn", "model type (cnn, rnn, tcn)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	if !market.ValidPair(prPair) {
		return fmt.Errorf("unknown currency pair %q", prPair)
	}
	if !market.ValidTimeframe(prTimeframe) {
		return fmt.Errorf("unknown timeframe %q", prTimeframe)
	}

	pred, err := models.NewManager().Predict(context.Background(), prModel, prPair, prTimeframe, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Prediction %s %s (%s)\n", prPair, prTimeframe, pred.ModelVersion)
	fmt.Printf("  Last Price:      %.5f\n", pred.LastPrice)
	fmt.Printf("  Predicted Price: %.5f\n", pred.PredictedPrice)
	fmt.Printf("  Change:          %+.4f%%\n", pred.PriceChange*100)
	fmt.Printf("  Confidence:      %.2f\n", pred.Confidence)
	return nil
}
