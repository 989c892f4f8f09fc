package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/digicafe/internal/config"
	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.APIKey == "" {
		log.Printf("GEMINI_API_KEY is not set; every request will use the fallback reply")
	}

	if err := logger.Init(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Console: true,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv := server.New(genai.NewClient(genai.Options{
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.RequestTimeout,
		QuizQuestions: cfg.QuizQuestions,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Digi Cafe API starting on :%s", port)
	if err := srv.Run(ctx, ":"+port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
