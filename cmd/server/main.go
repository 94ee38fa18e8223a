package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/faqdesk/chat-backend/internal/api"
	"github.com/faqdesk/chat-backend/internal/config"
	"github.com/faqdesk/chat-backend/internal/core"
	"github.com/faqdesk/chat-backend/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	level, err := log.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer dbStore.Close()

	// Pick the answering backend
	var answerer core.Answerer
	switch config.AppConfig.AnswerBackend {
	case "gemini":
		gemini, err := core.NewGeminiAnswerer(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Gemini answerer")
		}
		defer gemini.Close()
		answerer = gemini
	default:
		answerer = core.NewAnswerClient(config.AppConfig.AnswerServiceURL)
	}

	// Initialize services
	questionService := core.NewQuestionService(dbStore, answerer)
	chatService := core.NewChatService(dbStore)
	faqService := core.NewFAQService(dbStore)
	feedbackService := core.NewFeedbackService(dbStore)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(questionService, chatService, faqService, feedbackService)
	router := api.NewRouter(apiHandler, config.AppConfig.AllowedOrigins)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // answering-service calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Infof("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatalf("Could not listen on %s", serverAddr)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exiting gracefully")
}
