package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/price-bot/internal/app"
	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/kafka"
	"github.com/nguyentranbao-ct/price-bot/internal/server"
	"github.com/nguyentranbao-ct/price-bot/pkg/logger"
	log "github.com/nguyentranbao-ct/price-bot/pkg/logger/logctx"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "price-bot",
	Short:         "Telegram bot that reports product prices from Flipkart and Reliance Digital",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server and the optional Kafka consumer",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before the environment (default .env)")
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func loadConfig() (*config.Config, error) {
	conf, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := logger.Configure(conf.Log.Level, conf.Log.Format); err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	return conf, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	app.Invoke(conf,
		server.StartServer,
		kafka.StartConsumer,
	).Run()
	return nil
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Errorw(context.Background(), "command failed", "error", err)
		os.Exit(1)
	}
}
