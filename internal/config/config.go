package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort         string
	DatabaseURL      string
	LogLevel         string
	AnswerBackend    string // "http" (remote answering service) or "gemini"
	AnswerServiceURL string
	GeminiAPIKey     string
	AllowedOrigins   []string
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		HTTPPort:         getEnv("HTTP_PORT", "5000"),
		DatabaseURL:      getEnv("DATABASE_URL", "chat_history.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AnswerBackend:    getEnv("ANSWER_BACKEND", "http"),
		AnswerServiceURL: getEnv("ANSWER_SERVICE_URL", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	switch AppConfig.AnswerBackend {
	case "http":
		if AppConfig.AnswerServiceURL == "" {
			log.Fatal("ANSWER_SERVICE_URL environment variable is required when ANSWER_BACKEND=http")
		}
	case "gemini":
		if AppConfig.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when ANSWER_BACKEND=gemini")
		}
	default:
		log.Fatalf("Unknown ANSWER_BACKEND %q (expected \"http\" or \"gemini\")", AppConfig.AnswerBackend)
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
