package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/artifacts"
	"github.com/sumesh-12/energy-demand-prediction/internal/config"
	"github.com/sumesh-12/energy-demand-prediction/internal/store"
)

// artifactSource picks MinIO when an endpoint is configured, else the local directory.
func artifactSource(cfg config.ArtifactsConfig) (artifacts.Source, error) {
	if cfg.Minio.Endpoint == "" {
		return artifacts.DirSource{Dir: cfg.Dir}, nil
	}
	src, err := artifacts.NewMinioSource(artifacts.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		Prefix:    cfg.Minio.Prefix,
		Secure:    cfg.Minio.Secure,
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

// loadPredictionModel loads the bundle. Failure is returned, not fatal:
// the server keeps running and answers forecasts with 503.
func loadPredictionModel(ctx context.Context, cfg config.ArtifactsConfig, log *zap.Logger) (*artifacts.Bundle, error) {
	src, err := artifactSource(cfg)
	if err != nil {
		return nil, err
	}
	b, err := artifacts.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load artifacts from %s: %w", src, err)
	}
	log.Info("forecast model loaded",
		zap.String("source", src.String()),
		zap.String("fingerprint", b.Fingerprint),
		zap.Int("features", b.Model.InputWidth),
		zap.Int("window", b.Model.WindowLength),
	)
	return b, nil
}

// openStore returns the PostgreSQL store when a database URL is set, else an
// in-memory one. The returned func closes it.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (store.Store, func(), error) {
	if cfg.URL == "" {
		log.Info("accounts kept in memory")
		return store.NewMemory(), func() {}, nil
	}
	pg, err := store.OpenPostgres(ctx, cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("accounts stored in postgres")
	return pg, func() { pg.Close() }, nil
}
