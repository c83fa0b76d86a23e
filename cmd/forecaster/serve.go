package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/accounts"
	"github.com/sumesh-12/energy-demand-prediction/internal/api"
	"github.com/sumesh-12/energy-demand-prediction/internal/cache"
	"github.com/sumesh-12/energy-demand-prediction/internal/config"
	"github.com/sumesh-12/energy-demand-prediction/internal/events"
	"github.com/sumesh-12/energy-demand-prediction/internal/forecast"
	"github.com/sumesh-12/energy-demand-prediction/internal/logging"
	"github.com/sumesh-12/energy-demand-prediction/internal/metrics"
	"github.com/sumesh-12/energy-demand-prediction/internal/ws"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, frontendDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket forecast server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if frontendDir != "" {
				cfg.Server.FrontendDir = frontendDir
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&frontendDir, "frontend-dir", "", "directory containing the frontend build")
	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(reg)

	bundle, loadErr := loadPredictionModel(ctx, cfg.Artifacts, log)
	if loadErr != nil {
		log.Error("forecast model unavailable, predictions will be rejected", zap.Error(loadErr))
	}

	hub := ws.NewHub(log)
	publishers := []forecast.Publisher{ws.NewBridge(hub)}

	if cfg.NATS.URL != "" {
		pub, nc, err := events.Connect(events.Config{URL: cfg.NATS.URL, Name: "forecaster"})
		if err != nil {
			log.Warn("forecast events disabled", zap.Error(err))
		} else {
			defer nc.Drain()
			if cfg.NATS.Subject != "" && cfg.NATS.Subject != events.SubjectForecastCompleted {
				pub = events.NewPublisher(nc, cfg.NATS.Subject)
			}
			publishers = append(publishers, pub)
			log.Info("publishing forecast events", zap.String("url", cfg.NATS.URL), zap.String("subject", cfg.NATS.Subject))
		}
	}

	var fc forecast.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			log.Warn("forecast cache disabled", zap.Error(err))
		} else {
			defer rc.Close()
			fc = rc
			log.Info("forecast cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
		}
	}

	svc := forecast.NewService(forecast.Config{
		Bundle:     bundle,
		LoadErr:    loadErr,
		Logger:     log.Named("forecast"),
		Metrics:    met,
		Cache:      fc,
		Publishers: publishers,
	})

	st, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()
	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		log.Warn("using the development JWT secret; set FORECASTER_JWT_SECRET")
	}
	acc := accounts.New(st, accounts.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}, log.Named("accounts"))

	router := api.NewRouter(api.Options{
		Forecast:    svc,
		Accounts:    acc,
		WebSocket:   ws.NewHandler(hub, svc, log.Named("ws")),
		Gatherer:    reg,
		FrontendDir: cfg.Server.FrontendDir,
		Logger:      log.Named("http"),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.Bool("model_ready", svc.Ready()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
