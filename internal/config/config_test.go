package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("FLEET_GEMINI_API_KEY", "dummy")
	_ = os.Setenv("FLEET_NEO4J_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.GeminiAPIKey != "dummy" {
		t.Errorf("expected GeminiAPIKey to be dummy, got %v", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("expected GeminiModel gemini-1.5-pro, got %v", cfg.GeminiModel)
	}
	if cfg.OllamaHost != "http://localhost:11434" {
		t.Errorf("expected OllamaHost to be http://localhost:11434, got %v", cfg.OllamaHost)
	}
	if cfg.Neo4jURI != "neo4j://localhost:7687" {
		t.Errorf("expected Neo4jURI neo4j://localhost:7687, got %v", cfg.Neo4jURI)
	}
	if cfg.Neo4jDatabase != "neo4j" {
		t.Errorf("expected Neo4jDatabase neo4j, got %v", cfg.Neo4jDatabase)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("expected MaxResults 10, got %v", cfg.MaxResults)
	}
	if cfg.ContextWindow != 5 {
		t.Errorf("expected ContextWindow 5, got %v", cfg.ContextWindow)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("expected Temperature 0.1, got %v", cfg.Temperature)
	}
	if cfg.MaxTokens != 2000 {
		t.Errorf("expected MaxTokens 2000, got %v", cfg.MaxTokens)
	}
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("FLEET_GEMINI_API_KEY", "test-key")
	_ = os.Setenv("FLEET_NEO4J_URI", "neo4j://custom:7688")
	_ = os.Setenv("FLEET_NEO4J_USER", "admin")
	_ = os.Setenv("FLEET_NEO4J_PASSWORD", "secret")
	_ = os.Setenv("FLEET_NEO4J_DATABASE", "fleet")
	_ = os.Setenv("FLEET_MAX_RESULTS", "25")
	_ = os.Setenv("FLEET_LLM_TEMPERATURE", "0.3")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Neo4jURI != "neo4j://custom:7688" {
		t.Errorf("expected Neo4jURI neo4j://custom:7688, got %v", cfg.Neo4jURI)
	}
	if cfg.Neo4jUser != "admin" {
		t.Errorf("expected Neo4jUser admin, got %v", cfg.Neo4jUser)
	}
	if cfg.Neo4jDatabase != "fleet" {
		t.Errorf("expected Neo4jDatabase fleet, got %v", cfg.Neo4jDatabase)
	}
	if cfg.MaxResults != 25 {
		t.Errorf("expected MaxResults 25, got %v", cfg.MaxResults)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("expected Temperature 0.3, got %v", cfg.Temperature)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("FLEET_GEMINI_API_KEY", "dummy")
	_ = os.Setenv("FLEET_NEO4J_PASSWORD", "secret")
	_ = os.Setenv("FLEET_MAX_RESULTS", "not-a-number")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("expected MaxResults to fallback to 10, got %v", cfg.MaxResults)
	}
}

func TestGetEnvBoolEdgeCases(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("FLEET_GEMINI_API_KEY", "dummy")
	_ = os.Setenv("FLEET_NEO4J_PASSWORD", "secret")
	defer os.Clearenv()

	_ = os.Setenv("FLEET_USE_LOCAL_ONLY_LLM", "1")
	cfg, _ := Load()
	if !cfg.UseLocalOnlyLLM {
		t.Errorf("expected UseLocalOnlyLLM to be true for '1', got %v", cfg.UseLocalOnlyLLM)
	}

	_ = os.Setenv("FLEET_USE_LOCAL_ONLY_LLM", "TRUE")
	cfg, _ = Load()
	if !cfg.UseLocalOnlyLLM {
		t.Errorf("expected UseLocalOnlyLLM to be true for 'TRUE', got %v", cfg.UseLocalOnlyLLM)
	}

	_ = os.Setenv("FLEET_USE_LOCAL_ONLY_LLM", "false")
	cfg, _ = Load()
	if cfg.UseLocalOnlyLLM {
		t.Errorf("expected UseLocalOnlyLLM to be false for 'false', got %v", cfg.UseLocalOnlyLLM)
	}
}

func TestLoad_MissingNeo4jPassword(t *testing.T) {
	os.Clearenv()
	_ = os.Setenv("FLEET_GEMINI_API_KEY", "dummy")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for missing Neo4j password")
	}
}

func TestValidate_MissingGeminiKey(t *testing.T) {
	cfg := &Config{
		Neo4jURI:        "neo4j://localhost:7687",
		Neo4jPassword:   "secret",
		MaxResults:      10,
		UseLocalOnlyLLM: false,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing Gemini key when not local-only")
	}
}

func TestValidate_Success_LocalOnly(t *testing.T) {
	cfg := &Config{
		Neo4jURI:        "neo4j://localhost:7687",
		Neo4jPassword:   "secret",
		MaxResults:      10,
		UseLocalOnlyLLM: true,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error for local-only mode, got %v", err)
	}
}

func TestValidate_TemperatureRange(t *testing.T) {
	cfg := &Config{
		Neo4jURI:        "neo4j://localhost:7687",
		Neo4jPassword:   "secret",
		MaxResults:      10,
		UseLocalOnlyLLM: true,
		Temperature:     2.5,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range temperature")
	}
}
