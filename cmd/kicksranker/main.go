package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kicksranker/internal/config"
	"kicksranker/internal/http/handlers"
	applog "kicksranker/internal/log"
	"kicksranker/internal/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	// Optional file logging
	if f, err := applog.Tee(cfg.LogFile); err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	} else if f != nil {
		defer f.Close()
	}

	sneaks := provider.NewSneaksClient(cfg.ProviderURL)
	deps := handlers.NewDeps(cfg, sneaks)
	app := handlers.NewApp(deps)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("[server] shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()

	log.Printf("[server] listening on :%s (%d patterns, %d products each, %.0f%%+ threshold)",
		cfg.Port, len(cfg.Patterns), cfg.PerPattern, cfg.Threshold)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
