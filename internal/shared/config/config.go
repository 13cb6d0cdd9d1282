package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string
	DBDriver    string // "postgres" or "sqlite"

	// LLM
	LLMProvider    string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxTokens   int
	LLMTemperature float32
	OpenAIKey      string
	GroqKey        string
	DeepSeekKey    string
	GeminiKey      string
	ClaudeKey      string

	// Activity log retention
	ActivityRetentionDays int
	ActivityPruneSchedule string

	// WhatsApp channel
	WhatsAppStoreURL   string
	WhatsAppCustomerID uint
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:     os.Getenv("PORT"),
		Env:      os.Getenv("ENV"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    os.Getenv("DB_DRIVER"),

		LLMProvider:    os.Getenv("LLM_PROVIDER"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMTimeout:     getDuration("LLM_TIMEOUT", 30*time.Second),
		LLMMaxTokens:   getInt("LLM_MAX_TOKENS", 1024),
		LLMTemperature: float32(getFloat("LLM_TEMPERATURE", 0.7)),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GroqKey:        os.Getenv("GROQ_API_KEY"),
		DeepSeekKey:    os.Getenv("DEEPSEEK_API_KEY"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),

		ActivityRetentionDays: getInt("ACTIVITY_RETENTION_DAYS", 0),
		ActivityPruneSchedule: os.Getenv("ACTIVITY_PRUNE_SCHEDULE"),

		WhatsAppStoreURL:   os.Getenv("WHATSAPP_STORE_URL"),
		WhatsAppCustomerID: uint(getInt("WHATSAPP_CUSTOMER_ID", 0)),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBDriver == "sqlite" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "file:chatherine.db?_pragma=busy_timeout(5000)"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}
	if cfg.ActivityPruneSchedule == "" {
		cfg.ActivityPruneSchedule = "0 0 3 * * *" // daily at 03:00
	}
	if cfg.WhatsAppStoreURL == "" && cfg.DBDriver == "postgres" {
		// Default to main database if not specified
		cfg.WhatsAppStoreURL = cfg.DatabaseURL
	}

	return cfg
}

// IsProduction reports whether ENV is set to production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
