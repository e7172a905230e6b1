package main

import (
	"log"
	"os"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/cli"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/config"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	root := cli.NewRootCommand(cfg, logr)
	if err := root.Execute(); err != nil {
		logr.Sugar().Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
