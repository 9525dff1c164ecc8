package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/tarinagarwal/RRC2025/internal/logger"
	"github.com/tarinagarwal/RRC2025/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching pipeline over HTTP with SSE progress events",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address. Default is :8080.")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	pipe, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	srv := server.New(pipe, config.Server.UploadsDir, logger)

	logger.Info("starting the http server", zap.String("addr", config.Server.Addr))
	if err := http.ListenAndServe(config.Server.Addr, srv.Handler()); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
