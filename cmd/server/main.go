// Package main - Entry point for the mff-cost API server
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/MidwestFurryFandom/mff-rams-plugin/api"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/config"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", os.Getenv(config.EnvConfig), "Config file (JSON or YAML)")
	envFile := flag.String("env-file", ".env", "Dotenv file")
	addr := flag.String("addr", "", "Server address (default from config)")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		logging.Fatal("loading env file", zap.Error(err))
	}
	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal("loading config", zap.String("path", path), zap.Error(err))
	}
	cfg.ApplyEnv()
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initializing logging", zap.Error(err))
	}
	defer logging.Sync()

	listen := *addr
	if listen == "" {
		listen = cfg.Server.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(version, cost.NewEngine(cfg.Pricing), cfg.Server)
	logging.Info("mff-cost server starting",
		zap.String("version", version),
		zap.String("addr", listen),
		zap.String("pricing_hash", cfg.Pricing.Hash()),
	)
	if err := srv.ListenAndServe(ctx, listen); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
