package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxsim/journal"
	"github.com/rustyeddy/fxsim/models"
	"github.com/rustyeddy/fxsim/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve starts the fxsim HTTP API.

Routes are mounted under /api: backtests, models, predictions,
indicators, trades and metrics, plus /health for probes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Optional .env for container and dev setups; absence is fine.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	srv := server.New(j, models.NewManager(), cfg.Simulation)

	log.WithFields(log.Fields{
		"addr": cfg.Server.Addr,
		"db":   cfg.Database.Path,
	}).Info("starting fxsim")

	return srv.ListenAndServe(cfg.Server.Addr)
}
