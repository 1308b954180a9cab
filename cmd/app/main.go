package main

import (
	"flag"
	"log"
	"os"

	"PortfolioPulse/internal/di"
	"PortfolioPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config (.env, YAML, then environment overrides)
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s summarizer=%s cache=%s assets=%d", cfg.Environment, cfg.Summarizer.Provider, cfg.Cache.Backend, len(cfg.Assets))

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
