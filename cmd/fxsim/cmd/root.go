package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxsim/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fxsim",
	Short: "Forex price prediction and backtesting service",
	Long: `Fxsim simulates forex trading against model-generated price forecasts.

It provides tools for:
  - Backtesting the prediction-driven strategy over synthetic price series
  - One-shot price predictions from the mock model registry
  - Serving the full HTTP API (backtests, models, predictions, indicators)
  - Journaling runs and trades to SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
}

// loadConfig resolves the config file flag and applies the logging
// settings before returning.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if lvl, err := log.ParseLevel(cfg.Logging.Level); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	return cfg, nil
}
