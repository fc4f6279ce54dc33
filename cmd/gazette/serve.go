package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nainya/gazette/internal/config"
	"github.com/nainya/gazette/internal/metrics"
	"github.com/nainya/gazette/internal/server"
	"github.com/nainya/gazette/pkg/source"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the listing page, JSON API and PDF downloads",
		Long: `Serve the listing over HTTP.

Example:
  gazette serve --port 8080 --endpoint http://localhost:3001/documento
  gazette serve --config gazette.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port for the listing")
	cmd.Flags().Int("metrics-port", 0, "HTTP port for /metrics, /health and pprof (0 keeps config)")
	cmd.Flags().Int("grpc-port", 0, "gRPC health port (0 keeps config)")
	cmd.Flags().String("pdf-dir", "", "Directory holding the PDF artifacts")
	cmd.Flags().Duration("timeout", 0, "Upstream request timeout (0 for none)")
	cmd.Flags().Bool("strict", false, "Drop upstream records missing number or date")

	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("metrics-port") {
		cfg.Server.MetricsPort, _ = flags.GetInt("metrics-port")
	}
	if flags.Changed("grpc-port") {
		cfg.Server.GrpcPort, _ = flags.GetInt("grpc-port")
	}
	if flags.Changed("pdf-dir") {
		cfg.PDF.Dir, _ = flags.GetString("pdf-dir")
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Source.Timeout = d.String()
	}
	if flags.Changed("strict") {
		cfg.Source.Strict, _ = flags.GetBool("strict")
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(cfg, os.Stdout)
	m := metrics.NewMetrics(nil)

	client := source.NewClient(cfg.Source.ClientConfig(), server.NewSourceObserver(log, m))
	log.LogServerStart(cfg.Server.Port, client.Endpoint())

	srv, err := server.NewServer(server.Options{
		Loader:  client,
		PDFDir:  cfg.PDF.Dir,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var ready atomic.Bool
	errCh := make(chan error, 3)

	go func() {
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	var obs *server.ObservabilityServer
	if cfg.Server.MetricsPort > 0 {
		handler := server.NewObservabilityHandler(nil, func(context.Context) error {
			if !ready.Load() {
				return errors.New("listener not ready")
			}
			return nil
		}, m.ServerStartTime)
		obs = server.NewObservabilityServer(cfg.Server.MetricsPort, handler, log)
		go func() {
			if err := obs.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	var health *server.HealthServer
	if cfg.Server.GrpcPort > 0 {
		grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GrpcPort))
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC: %w", err)
		}
		health = server.NewHealthServer(m, log)
		go func() {
			if err := health.Server.Serve(grpcLis); err != nil {
				errCh <- fmt.Errorf("grpc server failed: %w", err)
			}
		}()
	}

	ready.Store(true)
	log.LogServerReady(cfg.Server.Port)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	log.LogServerShutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if health != nil {
		health.Shutdown()
	}
	if obs != nil {
		if err := obs.Shutdown(shutdownCtx); err != nil {
			log.Error("observability shutdown failed").Err(err).Send()
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown failed: %w", err)
	}
	return runErr
}
