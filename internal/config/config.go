package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all environmentally dependent settings for the Fleetsight API.
// It is constructed once at process start and passed by reference into each
// component; nothing mutates it afterwards.
type Config struct {
	// Gemini cloud LLM
	GeminiAPIKey string
	GeminiModel  string

	// Local Ollama fallback
	OllamaHost      string
	OllamaModel     string
	UseLocalOnlyLLM bool

	// Neo4j graph store
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Pipeline behavior
	MaxResults    int
	ContextWindow int
	Temperature   float32
	MaxTokens     int32

	// Query history audit store (sqlite DSN)
	HistoryDSN string

	// HTTP server
	HTTPAddr string
}

// Validate ensures that all required configuration is present and valid.
func (c *Config) Validate() error {
	if !c.UseLocalOnlyLLM && c.GeminiAPIKey == "" {
		return fmt.Errorf("FLEET_GEMINI_API_KEY is required when FLEET_USE_LOCAL_ONLY_LLM is false")
	}
	if c.Neo4jURI == "" {
		return fmt.Errorf("FLEET_NEO4J_URI must not be empty")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("FLEET_NEO4J_PASSWORD is required")
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("FLEET_MAX_RESULTS must be at least 1, got %d", c.MaxResults)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("FLEET_LLM_TEMPERATURE must be in [0, 2], got %v", c.Temperature)
	}
	return nil
}

// Load reads settings from the environment (and a .env file when present)
// with sensible defaults. Validation failures are returned, not fatal.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] No .env file loaded: %v", err)
	}

	cfg := &Config{
		GeminiAPIKey: getEnv("FLEET_GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("FLEET_GEMINI_MODEL", "gemini-1.5-pro"),

		OllamaHost:      getEnv("FLEET_OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:     getEnv("FLEET_OLLAMA_MODEL", "llama3"),
		UseLocalOnlyLLM: getEnvBool("FLEET_USE_LOCAL_ONLY_LLM", false),

		Neo4jURI:      getEnv("FLEET_NEO4J_URI", "neo4j://localhost:7687"),
		Neo4jUser:     getEnv("FLEET_NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("FLEET_NEO4J_PASSWORD", ""),
		Neo4jDatabase: getEnv("FLEET_NEO4J_DATABASE", "neo4j"),

		MaxResults:    getEnvInt("FLEET_MAX_RESULTS", 10),
		ContextWindow: getEnvInt("FLEET_CONTEXT_WINDOW", 5),
		Temperature:   getEnvFloat("FLEET_LLM_TEMPERATURE", 0.1),
		MaxTokens:     int32(getEnvInt("FLEET_LLM_MAX_TOKENS", 2000)),

		HistoryDSN: getEnv("FLEET_HISTORY_DSN", "file:fleetsight.db"),

		HTTPAddr: getEnv("FLEET_HTTP_ADDR", ":8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[Config] Warning: Invalid int for %s: %v. Using fallback %d", key, err, fallback)
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float32) float32 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		log.Printf("[Config] Warning: Invalid float for %s: %v. Using fallback %v", key, err, fallback)
		return fallback
	}
	return float32(value)
}
