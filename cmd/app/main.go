package main

import (
	"context"
	"flag"
	"log"
	"os"

	"RaptorExplorer/internal/di"
	"RaptorExplorer/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// missing credentials only fail the requests that need them
	for _, w := range cfg.Warnings() {
		log.Printf("config warning: %s", w)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	log.Printf("env=%s port=%d analytics=%t redis=%t", cfg.Environment, cfg.Server.Port, cfg.Analytics.Enabled, cfg.Redis.Enabled)

	if err := app.Run(context.Background()); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
