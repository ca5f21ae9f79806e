package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/prompthub/internal/config"
	"github.com/dimitrije/prompthub/internal/devserver"
	"github.com/dimitrije/prompthub/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	router, err := devserver.NewRouter(cfg, log)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	log.Info("Proxying prompt API",
		zap.String("prefix", cfg.Server.ProxyPrefix),
		zap.String("backend", cfg.Server.BackendURL),
	)

	server := devserver.NewServer(cfg, router, log)
	errs := server.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	case <-quit:
	}

	if err := server.Shutdown(); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
}
