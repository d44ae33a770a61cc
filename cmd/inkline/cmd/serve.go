package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/inkline/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP OCR API",
	Long: `Start an HTTP server exposing the OCR pipeline.

Endpoints:
  POST /ocr      - process an uploaded image
  GET  /healthz  - health check
  GET  /metrics  - Prometheus metrics

Examples:
  inkline serve
  inkline serve --port 8080`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d", port)
		}

		pl, err := cfg.PipelineBuilder().Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		srv := server.New(server.Config{
			Host:        host,
			Port:        port,
			MaxUploadMB: int64(cfg.Server.MaxUploadMB),
			TimeoutSec:  cfg.Server.TimeoutSec,
		}, pl)
		defer func() { _ = srv.Close() }()

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("starting OCR server", "addr", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "host interface to bind")
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().Int("max-upload-size", 50, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 60, "per-request processing timeout in seconds")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.max_upload_mb", serveCmd.Flags().Lookup("max-upload-size"))
	_ = viper.BindPFlag("server.timeout_sec", serveCmd.Flags().Lookup("timeout"))
}
