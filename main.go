package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohansaikiran/AI-Interview-Feedback/internal/config"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/db"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/gelf"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/handler"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/repository"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/router"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/scoring"
	"github.com/mohansaikiran/AI-Interview-Feedback/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Connect to MongoDB
	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Printf("Connected to MongoDB (db: %s)", cfg.MongoDB)

	database := client.Database(cfg.MongoDB)

	// Repositories
	interviewRepo := repository.NewInterviewRepo(database)
	feedbackRepo := repository.NewFeedbackRepo(database)

	// Scoring provider, chosen once at startup.
	var scorer scoring.Scorer
	if cfg.AnalysisProvider == config.ProviderOpenAI {
		scorer = scoring.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature())
		log.Printf("Scoring provider: openai (model: %s)", cfg.OpenAIModel)
	} else {
		scorer = scoring.NewHeuristic()
		log.Printf("Scoring provider: mock")
	}

	// Services
	interviewSvc := service.NewInterviewService(interviewRepo, feedbackRepo, scorer)

	// Handlers
	interviewH := handler.NewInterviewHandler(interviewSvc)

	// Router
	r := router.New(cfg.JWTSecret, interviewH)

	// Index creation runs in the background so a slow or cold store never
	// blocks startup; failures are logged and retried on next boot.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := interviewRepo.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: interview index creation failed: %v", err)
		}
		if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
			log.Printf("Warning: feedback index creation failed: %v", err)
		}
	}()

	log.Printf("Interview feedback server starting on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
