package main

import (
	"log"

	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/media"
	"github.com/minhokang/busanhunt/internal/store"
	"github.com/minhokang/busanhunt/server"
)

func main() {
	cfg := config.ServerFromEnv()

	if err := logger.Init(logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		Console:  cfg.LogConsole,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open team store: %v", err)
	}

	ms, err := media.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open media store: %v", err)
	}

	srv := server.New(cfg, st, ms)
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("busanhunt server starting on :%s", cfg.Port)
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
