package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Vikasjoshi008/github-skill-analyzer/internal/logger"
	"github.com/Vikasjoshi008/github-skill-analyzer/internal/server"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer as an HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", defaultListenAddr, "address to listen on")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the "+app, zap.String("version", version))

	pipeline, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	addr := config.Listen
	if addr == "" {
		addr = viper.GetString("listen")
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	srv := server.New(pipeline, logger)
	if err := srv.Listen(addr); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
