package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ffl-gateway-service/internal/config"
	"ffl-gateway-service/internal/logging"
	"ffl-gateway-service/internal/server"
)

const appVersion = "dev"

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "ffl-gateway",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
