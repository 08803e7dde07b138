package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Completion provider (OpenAI-compatible)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Style corpus extraction
	MaxDocChars    int
	MaxCorpusChars int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		MaxDocChars:    getEnvAsIntOrDefault("MAX_DOC_CHARS", 14000),
		MaxCorpusChars: getEnvAsIntOrDefault("MAX_CORPUS_CHARS", 35000),
		FrontendURL:    getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
