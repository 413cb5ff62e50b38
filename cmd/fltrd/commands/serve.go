package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fltrhq/fltr/internal/config"
	"github.com/fltrhq/fltr/internal/logger"
	"github.com/fltrhq/fltr/internal/metrics"
	"github.com/fltrhq/fltr/internal/server"
)

var listenAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the file-transfer server",
	Long: `Start the file-transfer server, optionally registering with the host's
ONC-RPC portmapper so clients can discover its bound port.

Examples:
  fltrd serve
  fltrd serve --listen :2049
  FLTR_REGISTER_PORTMAP=false fltrd serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddrFlag, "listen", "", "TCP address to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig(GetConfigFile())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if listenAddrFlag != "" {
		cfg.ListenAddr = listenAddrFlag
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.New(server.Config{
		ListenAddr:      cfg.ListenAddr,
		RegisterPortmap: cfg.RegisterPortmap,
		PortmapAddr:     cfg.PortmapAddr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
	})

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
		logger.Info("metrics endpoint enabled", "addr", cfg.MetricsAddr)
	}

	serverDone := make(chan error, 1)
	go func() { serverDone <- srv.Serve(ctx) }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("fltrd running, press Ctrl+C to stop")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received")
		cancel()
		srv.Stop()
		if err := <-serverDone; err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}
	logger.Info("fltrd stopped")
	return nil
}
